package repositories

import (
	"errors"

	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create inserts a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("review for this seller and car already exists")
		}
		return apperrors.Internal(err, "failed to create review")
	}
	return nil
}

// GetBySellerID returns the reviews of a seller, newest first.
func (r *GORMReviewRepository) GetBySellerID(sellerID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := r.db.Where("seller_id = ?", sellerID).Order("created_at DESC, id ASC").Find(&reviews).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get reviews of seller %d", sellerID)
	}
	return reviews, nil
}

// SellerRating returns the average rating and review count of a seller.
func (r *GORMReviewRepository) SellerRating(sellerID uint) (*RatingStats, error) {
	var stats RatingStats
	row := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("seller_id = ?", sellerID).
		Row()
	if err := row.Scan(&stats.Average, &stats.Count); err != nil {
		return nil, apperrors.Internal(err, "failed to aggregate rating of seller %d", sellerID)
	}
	return &stats, nil
}

// Delete removes a review.
func (r *GORMReviewRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to delete review %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("review %d not found for deletion", id)
	}
	return nil
}
