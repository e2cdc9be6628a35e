package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMCarRepository is a GORM implementation of CarRepository.
type GORMCarRepository struct {
	db *gorm.DB
}

// NewGORMCarRepository creates a new instance of GORMCarRepository.
func NewGORMCarRepository(db *gorm.DB) *GORMCarRepository {
	return &GORMCarRepository{db: db}
}

// Create inserts a new listing.
func (r *GORMCarRepository) Create(car *models.Car) error {
	if err := r.db.Create(car).Error; err != nil {
		return apperrors.Internal(err, "failed to create car")
	}
	return nil
}

// GetByID retrieves a single listing by its ID.
func (r *GORMCarRepository) GetByID(id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("car %d not found", id)
		}
		return nil, apperrors.Internal(err, "failed to get car %d", id)
	}
	return &car, nil
}

// Update saves all fields of an existing listing.
func (r *GORMCarRepository) Update(car *models.Car) error {
	res := r.db.Save(car)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update car %d", car.ID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("car %d not found for update", car.ID)
	}
	return nil
}

// UpdateStatus sets the status of a listing without any quota guard. Used by
// quota-exempt roles and by moderation, which overrides quotas by policy.
func (r *GORMCarRepository) UpdateStatus(id uint, status models.CarStatus) error {
	res := r.db.Model(&models.Car{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update status of car %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("car %d not found for status update", id)
	}
	return nil
}

// ActivateWithQuota activates a listing only while the seller holds fewer
// than maxActive other ACTIVE listings. The quota check lives inside the
// UPDATE itself so two concurrent activations cannot both pass it.
func (r *GORMCarRepository) ActivateWithQuota(id, sellerID uint, maxActive int) error {
	res := r.db.Exec(
		`UPDATE cars SET status = ?, updated_at = ?
		 WHERE id = ?
		   AND (SELECT COUNT(*) FROM cars AS others
		        WHERE others.seller_id = ? AND others.status = ? AND others.id <> ?) < ?`,
		models.CarStatusActive, time.Now(), id,
		sellerID, models.CarStatusActive, id, maxActive,
	)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to activate car %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.QuotaExceeded("active listing limit of %d reached", maxActive)
	}
	return nil
}

// Delete removes a listing and its photos.
func (r *GORMCarRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CarPhoto{}, "car_id = ?", id).Error; err != nil {
			return apperrors.Internal(err, "failed to delete photos of car %d", id)
		}
		res := tx.Delete(&models.Car{}, "id = ?", id)
		if res.Error != nil {
			return apperrors.Internal(res.Error, "failed to delete car %d", id)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("car %d not found for deletion", id)
		}
		return nil
	})
}

// GetBySellerID returns all listings of a seller, newest first.
func (r *GORMCarRepository) GetBySellerID(sellerID uint) ([]models.Car, error) {
	cars := []models.Car{}
	if err := r.db.Where("seller_id = ?", sellerID).Order("created_at DESC, id ASC").Find(&cars).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get cars of seller %d", sellerID)
	}
	return cars, nil
}

// GetByStoreID returns all listings of a store, newest first.
func (r *GORMCarRepository) GetByStoreID(storeID uint) ([]models.Car, error) {
	cars := []models.Car{}
	if err := r.db.Where("store_id = ?", storeID).Order("created_at DESC, id ASC").Find(&cars).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get cars of store %d", storeID)
	}
	return cars, nil
}

// BanBySeller sets BANNED on every listing of the seller.
func (r *GORMCarRepository) BanBySeller(sellerID uint) (int64, error) {
	res := r.db.Model(&models.Car{}).
		Where("seller_id = ?", sellerID).
		Update("status", models.CarStatusBanned)
	if res.Error != nil {
		return 0, apperrors.Internal(res.Error, "failed to ban cars of seller %d", sellerID)
	}
	return res.RowsAffected, nil
}

func applyCarFilters(db *gorm.DB, f CarFilters) *gorm.DB {
	query := db.Model(&models.Car{})
	if f.Brand != "" {
		query = query.Where("brand = ?", f.Brand)
	}
	if f.Model != "" {
		query = query.Where("model = ?", f.Model)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", f.MaxPrice)
	}
	if f.MinYear > 0 {
		query = query.Where("year_model >= ?", f.MinYear)
	}
	if f.MaxYear > 0 {
		query = query.Where("year_model <= ?", f.MaxYear)
	}
	if f.Transmission != "" {
		query = query.Where("transmission = ?", f.Transmission)
	}
	if f.Fuel != "" {
		query = query.Where("fuel = ?", f.Fuel)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.SellerID != 0 {
		query = query.Where("seller_id = ?", f.SellerID)
	}
	if f.StoreID != 0 {
		query = query.Where("store_id = ?", f.StoreID)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(version) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	return query
}

// Search returns one page of listings plus the total count. Both queries are
// built from the same predicate set within the call.
func (r *GORMCarRepository) Search(f CarFilters, limit, offset int) ([]models.Car, int64, error) {
	var total int64
	if err := applyCarFilters(r.db, f).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err, "failed to count cars")
	}

	cars := []models.Car{}
	if limit > 0 {
		err := applyCarFilters(r.db, f).
			Order("created_at DESC, id ASC").
			Limit(limit).
			Offset(offset).
			Find(&cars).Error
		if err != nil {
			return nil, 0, apperrors.Internal(err, "failed to search cars")
		}
	}
	return cars, total, nil
}

// AddPhoto inserts a photo record.
func (r *GORMCarRepository) AddPhoto(photo *models.CarPhoto) error {
	if err := r.db.Create(photo).Error; err != nil {
		return apperrors.Internal(err, "failed to add photo to car %d", photo.CarID)
	}
	return nil
}

// GetPhotos returns the photos of a listing ordered by order index, with
// ties resolved by insertion order.
func (r *GORMCarRepository) GetPhotos(carID uint) ([]models.CarPhoto, error) {
	photos := []models.CarPhoto{}
	if err := r.db.Where("car_id = ?", carID).Order("order_index ASC, id ASC").Find(&photos).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get photos of car %d", carID)
	}
	return photos, nil
}

// CountPhotos counts the photos of a listing.
func (r *GORMCarRepository) CountPhotos(carID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CarPhoto{}).Where("car_id = ?", carID).Count(&count).Error; err != nil {
		return 0, apperrors.Internal(err, "failed to count photos of car %d", carID)
	}
	return count, nil
}

// GetPhotoByID retrieves a single photo.
func (r *GORMCarRepository) GetPhotoByID(photoID uint) (*models.CarPhoto, error) {
	var photo models.CarPhoto
	if err := r.db.First(&photo, "id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("photo %d not found", photoID)
		}
		return nil, apperrors.Internal(err, "failed to get photo %d", photoID)
	}
	return &photo, nil
}

// DeletePhoto removes a photo record.
func (r *GORMCarRepository) DeletePhoto(photoID uint) error {
	res := r.db.Delete(&models.CarPhoto{}, "id = ?", photoID)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to delete photo %d", photoID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("photo %d not found for deletion", photoID)
	}
	return nil
}

// UpdatePhotoOrder sets the order index of a photo.
func (r *GORMCarRepository) UpdatePhotoOrder(photoID uint, orderIndex int) error {
	res := r.db.Model(&models.CarPhoto{}).Where("id = ?", photoID).Update("order_index", orderIndex)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to reorder photo %d", photoID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("photo %d not found for reorder", photoID)
	}
	return nil
}

// AddView appends a view record for a listing.
func (r *GORMCarRepository) AddView(view *models.CarView) error {
	if err := r.db.Create(view).Error; err != nil {
		return apperrors.Internal(err, "failed to record view of car %d", view.CarID)
	}
	return nil
}
