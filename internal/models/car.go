package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transmission is the gearbox type of a listed vehicle.
type Transmission string

const (
	TransmissionManual    Transmission = "MANUAL"
	TransmissionAutomatic Transmission = "AUTOMATIC"
	TransmissionCVT       Transmission = "CVT"
)

// FuelType is the fuel of a listed vehicle.
type FuelType string

const (
	FuelFlex     FuelType = "FLEX"
	FuelGasoline FuelType = "GASOLINE"
	FuelDiesel   FuelType = "DIESEL"
	FuelElectric FuelType = "ELECTRIC"
	FuelHybrid   FuelType = "HYBRID"
)

// CarStatus is the lifecycle state of a listing. Every listing starts in
// DRAFT; BANNED is reachable only through moderation.
type CarStatus string

const (
	CarStatusDraft  CarStatus = "DRAFT"
	CarStatusActive CarStatus = "ACTIVE"
	CarStatusSold   CarStatus = "SOLD"
	CarStatusBanned CarStatus = "BANNED"
)

// Valid reports whether s is one of the known listing states.
func (s CarStatus) Valid() bool {
	switch s {
	case CarStatusDraft, CarStatusActive, CarStatusSold, CarStatusBanned:
		return true
	}
	return false
}

// FeatureList stores the listing's ordered feature tags as a JSON column.
type FeatureList []string

// Value implements driver.Valuer.
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(f))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feature list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported feature list column type %T", value)
	}
	if len(data) == 0 {
		*f = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(f))
}

// Car is a vehicle listing. Invariant: YearModel >= YearFab.
type Car struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	SellerID     uint            `json:"seller_id" gorm:"index;not null"`
	StoreID      *uint           `json:"store_id,omitempty" gorm:"index"`
	Brand        string          `json:"brand" gorm:"type:varchar(100);index:idx_cars_brand_model" validate:"required,min=1,max=100"`
	Model        string          `json:"model" gorm:"type:varchar(100);index:idx_cars_brand_model" validate:"required,min=1,max=100"`
	Version      string          `json:"version" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	YearFab      int             `json:"year_fab" validate:"required,min=1900,max=2100"`
	YearModel    int             `json:"year_model" gorm:"index" validate:"required,min=1900,max=2100"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);index"`
	Mileage      int             `json:"mileage" validate:"gte=0"`
	Transmission Transmission    `json:"transmission" gorm:"type:varchar(16)" validate:"required,oneof=MANUAL AUTOMATIC CVT"`
	Fuel         FuelType        `json:"fuel" gorm:"type:varchar(16)" validate:"required,oneof=FLEX GASOLINE DIESEL ELECTRIC HYBRID"`
	Color        string          `json:"color" gorm:"type:varchar(50)" validate:"required,max=50"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	Features     FeatureList     `json:"features" gorm:"type:text"`
	Status       CarStatus       `json:"status" gorm:"type:varchar(16);index;default:DRAFT"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CarPhoto is one photo of a listing, stored as three derived renditions.
// A listing holds at most 15 photos; OrderIndex ties are resolved by
// insertion order (id ascending).
type CarPhoto struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CarID      uint      `json:"car_id" gorm:"index;not null"`
	ThumbURL   string    `json:"thumb_url"`
	MediumURL  string    `json:"medium_url"`
	LargeURL   string    `json:"large_url"`
	OrderIndex int       `json:"order_index" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// CarView records one fetch of a listing's public detail. It backs the
// most-viewed ranking with genuine counts.
type CarView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CarID     uint      `json:"car_id" gorm:"index;not null"`
	ViewerID  *uint     `json:"viewer_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
