package services

import (
	"github.com/go-playground/validator/v10"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// ReviewInput carries one seller rating.
type ReviewInput struct {
	SellerID uint   `json:"seller_id" validate:"required"`
	CarID    *uint  `json:"car_id,omitempty"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,max=2000"`
}

// SellerReviews bundles a seller's reviews with their aggregate rating.
type SellerReviews struct {
	Reviews []models.Review           `json:"reviews"`
	Stats   *repositories.RatingStats `json:"stats"`
}

// ReviewService handles seller ratings.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	validate   *validator.Validate
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		validate:   validator.New(),
	}
}

// Create records a rating for a seller.
func (s *ReviewService) Create(actor *models.User, input ReviewInput) (*models.Review, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	if input.SellerID == actor.ID {
		return nil, apperrors.Validation("cannot review yourself")
	}
	review := &models.Review{
		SellerID:   input.SellerID,
		ReviewerID: actor.ID,
		CarID:      input.CarID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// BySeller returns a seller's reviews plus their aggregate rating.
func (s *ReviewService) BySeller(sellerID uint) (*SellerReviews, error) {
	reviews, err := s.reviewRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	stats, err := s.reviewRepo.SellerRating(sellerID)
	if err != nil {
		return nil, err
	}
	return &SellerReviews{Reviews: reviews, Stats: stats}, nil
}
