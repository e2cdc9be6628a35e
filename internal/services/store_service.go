package services

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// StoreInput carries the store fields supplied by its owner.
type StoreInput struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Slug     string `json:"slug" validate:"required,min=3,max=255"`
	Document string `json:"document" validate:"required,min=14,max=18"`
	LogoURL  string `json:"logo_url" validate:"omitempty,url"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// StoreService handles store management and API-key issuing.
type StoreService struct {
	storeRepo repositories.StoreRepository
	validate  *validator.Validate
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		validate:  validator.New(),
	}
}

// newAPIKey issues an opaque 64-character key for bulk-import authentication.
func newAPIKey() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}

// Create registers a store for a store_owner or admin and issues its API key.
func (s *StoreService) Create(actor *models.User, input StoreInput) (*models.Store, error) {
	if actor.Role != models.RoleStoreOwner && actor.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("only store owners may create stores")
	}
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	store := &models.Store{
		OwnerID:  actor.ID,
		Name:     input.Name,
		Slug:     input.Slug,
		Document: input.Document,
		LogoURL:  input.LogoURL,
		Phone:    input.Phone,
		Email:    input.Email,
		APIKey:   newAPIKey(),
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetByID retrieves a store.
func (s *StoreService) GetByID(id uint) (*models.Store, error) {
	return s.storeRepo.GetByID(id)
}

// GetBySlug retrieves a store by its slug.
func (s *StoreService) GetBySlug(slug string) (*models.Store, error) {
	return s.storeRepo.GetBySlug(slug)
}

// GetMyStores returns the stores of the acting owner.
func (s *StoreService) GetMyStores(actor *models.User) ([]models.Store, error) {
	return s.storeRepo.GetByOwnerID(actor.ID)
}

// Update replaces the editable fields of a store. Owner only; the API key
// and verification flag are not editable here.
func (s *StoreService) Update(actor *models.User, id uint, input StoreInput) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != actor.ID {
		return nil, apperrors.Forbidden("no permission to edit store %d", id)
	}
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	store.Name = input.Name
	store.Slug = input.Slug
	store.Document = input.Document
	store.LogoURL = input.LogoURL
	store.Phone = input.Phone
	store.Email = input.Email
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// APIKey reveals the bulk-import key of a store to its owner. The key is
// never serialized on the store itself.
func (s *StoreService) APIKey(actor *models.User, id uint) (string, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if store.OwnerID != actor.ID {
		return "", apperrors.Forbidden("no permission to read the API key of store %d", id)
	}
	return store.APIKey, nil
}

// RotateAPIKey replaces the bulk-import key of a store. The previous key
// stops working immediately.
func (s *StoreService) RotateAPIKey(actor *models.User, id uint) (string, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if store.OwnerID != actor.ID {
		return "", apperrors.Forbidden("no permission to rotate the API key of store %d", id)
	}
	store.APIKey = newAPIKey()
	if err := s.storeRepo.Update(store); err != nil {
		return "", err
	}
	return store.APIKey, nil
}

// List returns a page of stores plus the total count.
func (s *StoreService) List(limit, offset int) ([]models.Store, int64, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, apperrors.Validation("limit and offset cannot be negative")
	}
	return s.storeRepo.List(limit, offset)
}
