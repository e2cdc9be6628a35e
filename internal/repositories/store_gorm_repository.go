package repositories

import (
	"errors"

	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{db: db}
}

// Create inserts a new store.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if err := r.db.Create(store).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("store slug %s already taken", store.Slug)
		}
		return apperrors.Internal(err, "failed to create store")
	}
	return nil
}

// GetByID retrieves a store by its ID.
func (r *GORMStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store %d not found", id)
		}
		return nil, apperrors.Internal(err, "failed to get store %d", id)
	}
	return &store, nil
}

// GetBySlug retrieves a store by its slug.
func (r *GORMStoreRepository) GetBySlug(slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store %s not found", slug)
		}
		return nil, apperrors.Internal(err, "failed to get store by slug")
	}
	return &store, nil
}

// GetByAPIKey retrieves the store owning an API key. Callers translate the
// not-found case into an authorization failure.
func (r *GORMStoreRepository) GetByAPIKey(apiKey string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "api_key = ?", apiKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("invalid or expired API key")
		}
		return nil, apperrors.Internal(err, "failed to get store by api key")
	}
	return &store, nil
}

// GetByOwnerID returns every store of an owner.
func (r *GORMStoreRepository) GetByOwnerID(ownerID uint) ([]models.Store, error) {
	stores := []models.Store{}
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC, id ASC").Find(&stores).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get stores of owner %d", ownerID)
	}
	return stores, nil
}

// Update saves all fields of an existing store.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update store %d", store.ID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("store %d not found for update", store.ID)
	}
	return nil
}

// SetVerified toggles the verification flag of a store.
func (r *GORMStoreRepository) SetVerified(id uint, verified bool) error {
	res := r.db.Model(&models.Store{}).Where("id = ?", id).Update("is_verified", verified)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to set verification of store %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("store %d not found for verification", id)
	}
	return nil
}

// List returns a page of stores, newest first, plus the total count.
func (r *GORMStoreRepository) List(limit, offset int) ([]models.Store, int64, error) {
	var total int64
	if err := r.db.Model(&models.Store{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err, "failed to count stores")
	}
	stores := []models.Store{}
	if limit > 0 {
		if err := r.db.Order("created_at DESC, id ASC").Limit(limit).Offset(offset).Find(&stores).Error; err != nil {
			return nil, 0, apperrors.Internal(err, "failed to list stores")
		}
	}
	return stores, total, nil
}
