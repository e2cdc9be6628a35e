package repositories

import (
	"automarket/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateRole(id uint, role models.Role) error
	List(limit, offset int, role models.Role) ([]models.User, int64, error)

	CreateProfile(profile *models.Profile) error
	GetProfile(userID uint) (*models.Profile, error)
	UpdateProfile(profile *models.Profile) error
}
