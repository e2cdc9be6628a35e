package models

import "time"

// Moderation target types.
const (
	ModerationTargetCar   = "car"
	ModerationTargetUser  = "user"
	ModerationTargetStore = "store"
)

// ModerationLog is one append-only audit record of an admin action. Rows are
// never updated or deleted.
type ModerationLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AdminID    uint      `json:"admin_id" gorm:"index;not null"`
	TargetType string    `json:"target_type" gorm:"type:varchar(16);not null"`
	TargetID   uint      `json:"target_id" gorm:"index;not null"`
	Action     string    `json:"action" gorm:"type:varchar(64);not null"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
