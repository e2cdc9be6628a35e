package services

import (
	"github.com/go-playground/validator/v10"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// ProfileInput carries the editable contact details of a user profile.
type ProfileInput struct {
	FullName  string `json:"full_name" validate:"required,min=3,max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	City      string `json:"city" validate:"omitempty,max=100"`
	State     string `json:"state" validate:"omitempty,max=100"`
	Zip       string `json:"zip" validate:"omitempty,max=20"`
}

// ProfileService manages the marketplace-facing profile of an account.
type ProfileService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// Get returns the profile of the acting user.
func (s *ProfileService) Get(actor *models.User) (*models.Profile, error) {
	return s.userRepo.GetProfile(actor.ID)
}

// Upsert creates or replaces the profile of the acting user.
func (s *ProfileService) Upsert(actor *models.User, input ProfileInput) (*models.Profile, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetProfile(actor.ID)
	switch {
	case err == nil:
		profile.FullName = input.FullName
		profile.AvatarURL = input.AvatarURL
		profile.Phone = input.Phone
		profile.City = input.City
		profile.State = input.State
		profile.Zip = input.Zip
		if err := s.userRepo.UpdateProfile(profile); err != nil {
			return nil, err
		}
		return profile, nil
	case apperrors.IsKind(err, apperrors.KindNotFound):
		profile = &models.Profile{
			ID:        actor.ID,
			FullName:  input.FullName,
			AvatarURL: input.AvatarURL,
			Phone:     input.Phone,
			City:      input.City,
			State:     input.State,
			Zip:       input.Zip,
		}
		if err := s.userRepo.CreateProfile(profile); err != nil {
			return nil, err
		}
		return profile, nil
	default:
		return nil, err
	}
}
