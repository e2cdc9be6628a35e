package repositories

import (
	"errors"

	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts a new user.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("user with email %s already exists", user.Email)
		}
		return apperrors.Internal(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by its ID.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", id)
		}
		return nil, apperrors.Internal(err, "failed to get user %d", id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with email %s not found", email)
		}
		return nil, apperrors.Internal(err, "failed to get user by email")
	}
	return &user, nil
}

// Update saves all fields of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update user %d", user.ID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user %d not found for update", user.ID)
	}
	return nil
}

// UpdateRole sets the role of a user.
func (r *GORMUserRepository) UpdateRole(id uint, role models.Role) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update role of user %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user %d not found for role update", id)
	}
	return nil
}

// List returns a page of users, optionally filtered by role, newest first.
func (r *GORMUserRepository) List(limit, offset int, role models.Role) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err, "failed to count users")
	}
	users := []models.User{}
	if limit > 0 {
		if err := query.Order("created_at DESC, id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
			return nil, 0, apperrors.Internal(err, "failed to list users")
		}
	}
	return users, total, nil
}

// CreateProfile inserts a profile for a user.
func (r *GORMUserRepository) CreateProfile(profile *models.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("profile for user %d already exists", profile.ID)
		}
		return apperrors.Internal(err, "failed to create profile")
	}
	return nil
}

// GetProfile retrieves the profile of a user.
func (r *GORMUserRepository) GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("profile for user %d not found", userID)
		}
		return nil, apperrors.Internal(err, "failed to get profile for user %d", userID)
	}
	return &profile, nil
}

// UpdateProfile saves all fields of an existing profile.
func (r *GORMUserRepository) UpdateProfile(profile *models.Profile) error {
	res := r.db.Save(profile)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update profile %d", profile.ID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("profile %d not found for update", profile.ID)
	}
	return nil
}
