package repositories

import (
	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{db: db}
}

// Create inserts a new message.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return apperrors.Internal(err, "failed to create message")
	}
	return nil
}

// GetConversation returns the thread between two users on one listing.
func (r *GORMMessageRepository) GetConversation(carID, userID, otherUserID uint) ([]models.Message, error) {
	messages := []models.Message{}
	err := r.db.
		Where("car_id = ?", carID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get conversation on car %d", carID)
	}
	return messages, nil
}

// GetUserMessages returns every message a user sent or received, newest first.
func (r *GORMMessageRepository) GetUserMessages(userID uint) ([]models.Message, error) {
	messages := []models.Message{}
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get messages of user %d", userID)
	}
	return messages, nil
}

// MarkRead flags the given messages as read.
func (r *GORMMessageRepository) MarkRead(messageIDs []uint) error {
	if len(messageIDs) == 0 {
		return nil
	}
	err := r.db.Model(&models.Message{}).
		Where("id IN ?", messageIDs).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.Internal(err, "failed to mark messages as read")
	}
	return nil
}
