package services

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// TransactionInput carries one sale proposal from a buyer.
type TransactionInput struct {
	CarID         uint             `json:"car_id" validate:"required"`
	SellerID      uint             `json:"seller_id" validate:"required"`
	ProposedPrice *decimal.Decimal `json:"proposed_price,omitempty"`
	Notes         string           `json:"notes" validate:"omitempty,max=2000"`
}

// TransactionService handles sale proposals between buyers and sellers.
type TransactionService struct {
	transactionRepo repositories.TransactionRepository
	carRepo         repositories.CarRepository
	notifier        Notifier
	validate        *validator.Validate
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo repositories.TransactionRepository, carRepo repositories.CarRepository, notifier Notifier) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		carRepo:         carRepo,
		notifier:        notifier,
		validate:        validator.New(),
	}
}

// Create records a PENDING proposal from the acting buyer.
func (s *TransactionService) Create(actor *models.User, input TransactionInput) (*models.Transaction, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	if input.ProposedPrice != nil && !input.ProposedPrice.IsPositive() {
		return nil, apperrors.Validation("proposed price must be positive")
	}
	if _, err := s.carRepo.GetByID(input.CarID); err != nil {
		return nil, err
	}
	transaction := &models.Transaction{
		CarID:         input.CarID,
		BuyerID:       actor.ID,
		SellerID:      input.SellerID,
		ProposedPrice: input.ProposedPrice,
		Status:        models.TransactionPending,
		Notes:         input.Notes,
	}
	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, err
	}
	notify(s.notifier, "transaction.created", map[string]interface{}{
		"transaction_id": transaction.ID,
		"car_id":         transaction.CarID,
		"buyer_id":       transaction.BuyerID,
		"seller_id":      transaction.SellerID,
	})
	return transaction, nil
}

// UpdateStatus moves a proposal to a new state. Only its buyer or seller may.
func (s *TransactionService) UpdateStatus(actor *models.User, id uint, status models.TransactionStatus) error {
	if !status.Valid() {
		return apperrors.Validation("invalid transaction status %q", status)
	}
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if transaction.BuyerID != actor.ID && transaction.SellerID != actor.ID {
		return apperrors.Forbidden("no permission to change transaction %d", id)
	}
	return s.transactionRepo.UpdateStatus(id, status)
}

// Mine returns every transaction where the actor is buyer or seller.
func (s *TransactionService) Mine(actor *models.User) ([]models.Transaction, error) {
	return s.transactionRepo.GetByUserID(actor.ID)
}
