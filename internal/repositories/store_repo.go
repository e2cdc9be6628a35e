package repositories

import (
	"automarket/internal/models"
)

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id uint) (*models.Store, error)
	GetBySlug(slug string) (*models.Store, error)
	GetByAPIKey(apiKey string) (*models.Store, error)
	GetByOwnerID(ownerID uint) ([]models.Store, error)
	Update(store *models.Store) error
	SetVerified(id uint, verified bool) error
	List(limit, offset int) ([]models.Store, int64, error)
}
