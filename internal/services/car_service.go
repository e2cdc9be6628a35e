package services

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
	"automarket/pkg/images"
	"automarket/pkg/storage"
)

// A plain user may hold at most this many ACTIVE listings. store_owner and
// admin are exempt.
const maxActivePlainUser = 1

// MaxPhotosPerCar caps the photos of one listing.
const MaxPhotosPerCar = 15

// CarInput carries the listing fields supplied by a seller or a bulk import.
type CarInput struct {
	Brand        string          `json:"brand" validate:"required,min=1,max=100"`
	Model        string          `json:"model" validate:"required,min=1,max=100"`
	Version      string          `json:"version" validate:"required,min=1,max=100"`
	YearFab      int             `json:"year_fab" validate:"required,min=1900,max=2100"`
	YearModel    int             `json:"year_model" validate:"required,min=1900,max=2100"`
	Price        decimal.Decimal `json:"price"`
	Mileage      int             `json:"mileage" validate:"gte=0"`
	Transmission string          `json:"transmission" validate:"required,oneof=MANUAL AUTOMATIC CVT"`
	Fuel         string          `json:"fuel" validate:"required,oneof=FLEX GASOLINE DIESEL ELECTRIC HYBRID"`
	Color        string          `json:"color" validate:"required,min=1,max=50"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	Features     []string        `json:"features" validate:"omitempty,max=50,dive,max=100"`
	StoreID      *uint           `json:"store_id,omitempty"`
}

// PhotoOrderUpdate moves one photo to a new order index.
type PhotoOrderUpdate struct {
	PhotoID    uint `json:"photo_id" validate:"required"`
	OrderIndex int  `json:"order_index" validate:"gte=0,lte=14"`
}

// SearchResult is one page of listings plus pagination metadata. Total is
// computed from the same filter set as the page within a single call.
type SearchResult struct {
	Data    []models.Car `json:"data"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	HasNext bool         `json:"has_next"`
}

// CarService handles the listing lifecycle: creation, updates, status
// transitions with role quotas, photos and search.
type CarService struct {
	carRepo  repositories.CarRepository
	store    storage.Storage
	notifier Notifier
	validate *validator.Validate
}

// NewCarService creates a new CarService.
func NewCarService(carRepo repositories.CarRepository, store storage.Storage, notifier Notifier) *CarService {
	return &CarService{
		carRepo:  carRepo,
		store:    store,
		notifier: notifier,
		validate: validator.New(),
	}
}

func (s *CarService) validateInput(input CarInput) error {
	if err := validateStruct(s.validate, input); err != nil {
		return err
	}
	if input.YearModel < input.YearFab {
		return apperrors.Validation("model year %d cannot precede fabrication year %d",
			input.YearModel, input.YearFab)
	}
	if !input.Price.IsPositive() {
		return apperrors.Validation("price must be positive")
	}
	return nil
}

// Create validates the input and inserts a new listing. The listing always
// starts in DRAFT regardless of input; the active quota applies only when
// entering ACTIVE.
func (s *CarService) Create(actor *models.User, input CarInput) (*models.Car, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	car := &models.Car{
		SellerID:     actor.ID,
		StoreID:      input.StoreID,
		Brand:        input.Brand,
		Model:        input.Model,
		Version:      input.Version,
		YearFab:      input.YearFab,
		YearModel:    input.YearModel,
		Price:        input.Price,
		Mileage:      input.Mileage,
		Transmission: models.Transmission(input.Transmission),
		Fuel:         models.FuelType(input.Fuel),
		Color:        input.Color,
		Description:  input.Description,
		Features:     models.FeatureList(input.Features),
		Status:       models.CarStatusDraft,
	}
	if err := s.carRepo.Create(car); err != nil {
		return nil, err
	}
	return car, nil
}

// GetByID retrieves a listing and records one view against it. A failed view
// write never fails the read.
func (s *CarService) GetByID(id uint, viewer *models.User) (*models.Car, error) {
	car, err := s.carRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	view := &models.CarView{CarID: car.ID}
	if viewer != nil {
		viewerID := viewer.ID
		view.ViewerID = &viewerID
	}
	if err := s.carRepo.AddView(view); err != nil {
		log.Printf("Warning: failed to record view of car %d: %v", car.ID, err)
	}
	return car, nil
}

// Update replaces the editable fields of a listing. Only the owning seller
// may update; the year invariant is re-checked against the new values.
func (s *CarService) Update(actor *models.User, id uint, input CarInput) (*models.Car, error) {
	car, err := s.carRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if car.SellerID != actor.ID {
		return nil, apperrors.Forbidden("no permission to edit car %d", id)
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	car.StoreID = input.StoreID
	car.Brand = input.Brand
	car.Model = input.Model
	car.Version = input.Version
	car.YearFab = input.YearFab
	car.YearModel = input.YearModel
	car.Price = input.Price
	car.Mileage = input.Mileage
	car.Transmission = models.Transmission(input.Transmission)
	car.Fuel = models.FuelType(input.Fuel)
	car.Color = input.Color
	car.Description = input.Description
	car.Features = models.FeatureList(input.Features)
	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}
	return car, nil
}

// SetStatus transitions a listing. The owning seller and admins may
// transition; entering ACTIVE as a plain user runs the active-listing quota
// atomically with the write.
func (s *CarService) SetStatus(actor *models.User, id uint, status models.CarStatus) error {
	if !status.Valid() {
		return apperrors.Validation("invalid listing status %q", status)
	}
	car, err := s.carRepo.GetByID(id)
	if err != nil {
		return err
	}
	if car.SellerID != actor.ID && actor.Role != models.RoleAdmin {
		return apperrors.Forbidden("no permission to change car %d", id)
	}
	if status == models.CarStatusActive && car.Status != models.CarStatusActive &&
		actor.Role == models.RoleUser {
		return s.carRepo.ActivateWithQuota(id, car.SellerID, maxActivePlainUser)
	}
	return s.carRepo.UpdateStatus(id, status)
}

// Delete removes a listing and its photos. Only the owning seller may
// delete; admins moderate with BANNED instead.
func (s *CarService) Delete(actor *models.User, id uint) error {
	car, err := s.carRepo.GetByID(id)
	if err != nil {
		return err
	}
	if car.SellerID != actor.ID {
		return apperrors.Forbidden("no permission to delete car %d", id)
	}
	return s.carRepo.Delete(id)
}

// GetMyCars returns the listings of the acting seller.
func (s *CarService) GetMyCars(actor *models.User) ([]models.Car, error) {
	return s.carRepo.GetBySellerID(actor.ID)
}

// Search runs the filter set against the listing store and returns one page
// plus pagination metadata.
func (s *CarService) Search(filters repositories.CarFilters, limit, offset int) (*SearchResult, error) {
	if limit < 0 {
		return nil, apperrors.Validation("limit cannot be negative")
	}
	if offset < 0 {
		return nil, apperrors.Validation("offset cannot be negative")
	}
	data, total, err := s.carRepo.Search(filters, limit, offset)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasNext: int64(offset+limit) < total,
	}, nil
}

// AttachPhoto derives the three renditions from imageData, uploads them and
// persists the photo record. Only the owning seller may attach; a listing
// holds at most MaxPhotosPerCar photos.
func (s *CarService) AttachPhoto(actor *models.User, carID uint, imageData []byte, orderIndex int) (*models.CarPhoto, error) {
	car, err := s.carRepo.GetByID(carID)
	if err != nil {
		return nil, err
	}
	if car.SellerID != actor.ID {
		return nil, apperrors.Forbidden("no permission to add photos to car %d", carID)
	}
	if orderIndex < 0 || orderIndex >= MaxPhotosPerCar {
		return nil, apperrors.Validation("order index must be between 0 and %d", MaxPhotosPerCar-1)
	}
	count, err := s.carRepo.CountPhotos(carID)
	if err != nil {
		return nil, err
	}
	if count >= MaxPhotosPerCar {
		return nil, apperrors.Capacity("listing already holds the maximum of %d photos", MaxPhotosPerCar)
	}

	renditions, err := images.Derive(imageData)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "unreadable image data")
	}

	fileID := uuid.New().String()
	thumbURL, err := s.store.Put(fmt.Sprintf("cars/%d/thumb-%s.jpg", carID, fileID), renditions.Thumb, "image/jpeg")
	if err != nil {
		return nil, apperrors.Internal(err, "failed to store thumbnail")
	}
	mediumURL, err := s.store.Put(fmt.Sprintf("cars/%d/medium-%s.jpg", carID, fileID), renditions.Medium, "image/jpeg")
	if err != nil {
		return nil, apperrors.Internal(err, "failed to store medium rendition")
	}
	largeURL, err := s.store.Put(fmt.Sprintf("cars/%d/large-%s.jpg", carID, fileID), renditions.Large, "image/jpeg")
	if err != nil {
		return nil, apperrors.Internal(err, "failed to store large rendition")
	}

	photo := &models.CarPhoto{
		CarID:      carID,
		ThumbURL:   thumbURL,
		MediumURL:  mediumURL,
		LargeURL:   largeURL,
		OrderIndex: orderIndex,
	}
	if err := s.carRepo.AddPhoto(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns the photos of a listing in display order.
func (s *CarService) ListPhotos(carID uint) ([]models.CarPhoto, error) {
	return s.carRepo.GetPhotos(carID)
}

// DeletePhoto removes one photo. Only the owner of the listing may delete.
func (s *CarService) DeletePhoto(actor *models.User, photoID uint) error {
	photo, err := s.carRepo.GetPhotoByID(photoID)
	if err != nil {
		return err
	}
	car, err := s.carRepo.GetByID(photo.CarID)
	if err != nil {
		return err
	}
	if car.SellerID != actor.ID {
		return apperrors.Forbidden("no permission to delete photos of car %d", car.ID)
	}
	return s.carRepo.DeletePhoto(photoID)
}

// ReorderPhotos applies a batch of order-index moves. Every photo must
// belong to a listing of the acting seller.
func (s *CarService) ReorderPhotos(actor *models.User, updates []PhotoOrderUpdate) error {
	for _, update := range updates {
		if err := validateStruct(s.validate, update); err != nil {
			return err
		}
		photo, err := s.carRepo.GetPhotoByID(update.PhotoID)
		if err != nil {
			return err
		}
		car, err := s.carRepo.GetByID(photo.CarID)
		if err != nil {
			return err
		}
		if car.SellerID != actor.ID {
			return apperrors.Forbidden("no permission to reorder photos of car %d", car.ID)
		}
		if err := s.carRepo.UpdatePhotoOrder(update.PhotoID, update.OrderIndex); err != nil {
			return err
		}
	}
	return nil
}
