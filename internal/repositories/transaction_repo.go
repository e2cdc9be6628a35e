package repositories

import (
	"automarket/internal/models"
)

// TransactionRepository defines the interface for sale-proposal data access.
type TransactionRepository interface {
	Create(transaction *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	UpdateStatus(id uint, status models.TransactionStatus) error
	GetByUserID(userID uint) ([]models.Transaction, error)
}
