package services

import (
	"github.com/go-playground/validator/v10"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// MessageInput carries one outgoing buyer-seller message.
type MessageInput struct {
	CarID      uint   `json:"car_id" validate:"required"`
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1,max=2000"`
}

// MessageService handles buyer-seller messaging threaded by listing.
type MessageService struct {
	messageRepo repositories.MessageRepository
	carRepo     repositories.CarRepository
	notifier    Notifier
	validate    *validator.Validate
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repositories.MessageRepository, carRepo repositories.CarRepository, notifier Notifier) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		carRepo:     carRepo,
		notifier:    notifier,
		validate:    validator.New(),
	}
}

// Send delivers one message about a listing. The receiver is notified
// best-effort.
func (s *MessageService) Send(actor *models.User, input MessageInput) (*models.Message, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	if input.ReceiverID == actor.ID {
		return nil, apperrors.Validation("cannot message yourself")
	}
	if _, err := s.carRepo.GetByID(input.CarID); err != nil {
		return nil, err
	}
	message := &models.Message{
		CarID:      input.CarID,
		SenderID:   actor.ID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	notify(s.notifier, "message.created", map[string]interface{}{
		"message_id":  message.ID,
		"car_id":      message.CarID,
		"sender_id":   message.SenderID,
		"receiver_id": message.ReceiverID,
	})
	return message, nil
}

// Conversation returns the thread between the actor and another user on one
// listing, in chronological order.
func (s *MessageService) Conversation(actor *models.User, carID, otherUserID uint) ([]models.Message, error) {
	return s.messageRepo.GetConversation(carID, actor.ID, otherUserID)
}

// MyMessages returns every message the actor sent or received, newest first.
func (s *MessageService) MyMessages(actor *models.User) ([]models.Message, error) {
	return s.messageRepo.GetUserMessages(actor.ID)
}

// MarkRead flags the given messages as read.
func (s *MessageService) MarkRead(actor *models.User, messageIDs []uint) error {
	if len(messageIDs) == 0 {
		return apperrors.Validation("no message ids given")
	}
	return s.messageRepo.MarkRead(messageIDs)
}
