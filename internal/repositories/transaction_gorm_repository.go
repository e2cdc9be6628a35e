package repositories

import (
	"errors"

	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMTransactionRepository is a GORM implementation of TransactionRepository.
type GORMTransactionRepository struct {
	db *gorm.DB
}

// NewGORMTransactionRepository creates a new instance of GORMTransactionRepository.
func NewGORMTransactionRepository(db *gorm.DB) *GORMTransactionRepository {
	return &GORMTransactionRepository{db: db}
}

// Create inserts a new sale proposal.
func (r *GORMTransactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return apperrors.Internal(err, "failed to create transaction")
	}
	return nil
}

// GetByID retrieves a transaction by its ID.
func (r *GORMTransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("transaction %d not found", id)
		}
		return nil, apperrors.Internal(err, "failed to get transaction %d", id)
	}
	return &transaction, nil
}

// UpdateStatus sets the status of a transaction.
func (r *GORMTransactionRepository) UpdateStatus(id uint, status models.TransactionStatus) error {
	res := r.db.Model(&models.Transaction{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update status of transaction %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("transaction %d not found for status update", id)
	}
	return nil
}

// GetByUserID returns every transaction where the user is buyer or seller.
func (r *GORMTransactionRepository) GetByUserID(userID uint) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := r.db.
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC, id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get transactions of user %d", userID)
	}
	return transactions, nil
}
