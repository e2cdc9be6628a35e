package models

import "time"

// Review is a rating left for a seller, optionally tied to a specific
// listing. One review per (seller, reviewer, car) triple.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SellerID   uint      `json:"seller_id" gorm:"index;uniqueIndex:idx_reviews_unique;not null"`
	ReviewerID uint      `json:"reviewer_id" gorm:"index;uniqueIndex:idx_reviews_unique;not null"`
	CarID      *uint     `json:"car_id,omitempty" gorm:"uniqueIndex:idx_reviews_unique"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment" validate:"omitempty,max=2000"`
	CreatedAt  time.Time `json:"created_at"`
}
