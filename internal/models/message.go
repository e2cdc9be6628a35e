package models

import "time"

// Message is one buyer-seller message. Conversations are threaded by the
// (carID, senderID, receiverID) triple.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CarID      uint      `json:"car_id" gorm:"index;index:idx_messages_conversation;not null"`
	SenderID   uint      `json:"sender_id" gorm:"index;index:idx_messages_conversation;not null"`
	ReceiverID uint      `json:"receiver_id" gorm:"index;index:idx_messages_conversation;not null"`
	Content    string    `json:"content" validate:"required,min=1,max=2000"`
	IsRead     bool      `json:"is_read" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
}
