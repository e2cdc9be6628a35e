package repositories

import (
	"automarket/internal/models"
)

// RatingStats is the aggregate rating of a seller across all their listings.
type RatingStats struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetBySellerID(sellerID uint) ([]models.Review, error)
	SellerRating(sellerID uint) (*RatingStats, error)
	Delete(id uint) error
}
