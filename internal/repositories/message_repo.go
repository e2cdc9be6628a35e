package repositories

import (
	"automarket/internal/models"
)

// MessageRepository defines the interface for buyer-seller message access.
type MessageRepository interface {
	Create(message *models.Message) error
	// GetConversation returns the thread on one listing between two users, in
	// chronological order, regardless of who sent each message.
	GetConversation(carID, userID, otherUserID uint) ([]models.Message, error)
	GetUserMessages(userID uint) ([]models.Message, error)
	MarkRead(messageIDs []uint) error
}
