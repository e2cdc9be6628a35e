package models

import "time"

// Store is a dealership owned by a store_owner (or admin) user. It holds a
// distinct listing pool and authenticates bulk imports with an opaque API key.
type Store struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OwnerID    uint      `json:"owner_id" gorm:"index;not null"`
	Name       string    `json:"name" validate:"required,min=3,max=100"`
	Slug       string    `json:"slug" gorm:"uniqueIndex;type:varchar(255)" validate:"required,min=3,max=255"`
	Document   string    `json:"document" gorm:"type:varchar(20)" validate:"required,min=14,max=18"`
	LogoURL    string    `json:"logo_url" validate:"omitempty,url"`
	APIKey     string    `json:"-" gorm:"uniqueIndex;type:varchar(64)"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	Phone      string    `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	Email      string    `json:"email" gorm:"type:varchar(320)" validate:"omitempty,email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
