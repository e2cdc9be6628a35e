// Package images derives the fixed photo renditions from an uploaded image.
package images

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Rendition target sizes. These are a policy choice, not a contract.
const (
	ThumbWidth   = 400
	ThumbHeight  = 300
	MediumWidth  = 800
	MediumHeight = 600
	LargeWidth   = 1600
	LargeHeight  = 1200
)

// Renditions holds the three encoded sizes of one uploaded photo.
type Renditions struct {
	Thumb  []byte
	Medium []byte
	Large  []byte
}

// Derive decodes data and produces the thumbnail, medium and large
// renditions as JPEG, cover-cropped to the target aspect ratio.
func Derive(data []byte) (*Renditions, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb, err := encode(imaging.Fill(src, ThumbWidth, ThumbHeight, imaging.Center, imaging.Lanczos), 80)
	if err != nil {
		return nil, err
	}
	medium, err := encode(imaging.Fill(src, MediumWidth, MediumHeight, imaging.Center, imaging.Lanczos), 85)
	if err != nil {
		return nil, err
	}
	large, err := encode(imaging.Fill(src, LargeWidth, LargeHeight, imaging.Center, imaging.Lanczos), 90)
	if err != nil {
		return nil, err
	}

	return &Renditions{Thumb: thumb, Medium: medium, Large: large}, nil
}

func encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode rendition: %w", err)
	}
	return buf.Bytes(), nil
}
