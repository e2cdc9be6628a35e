package models

import "time"

// Role determines which operations a user may perform. Authorization is
// checked per operation against an explicit role set, never inherited.
type Role string

const (
	RoleUser       Role = "user"
	RoleStoreOwner Role = "store_owner"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStoreOwner, RoleAdmin:
		return true
	}
	return false
}

// User represents an account of the marketplace. Accounts are auto-provisioned
// on first sight with role "user" unless the email matches the configured
// owner address, in which case the role is forced to admin.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OpenID       string    `json:"open_id" gorm:"uniqueIndex;type:varchar(64)" validate:"required,max=64"`
	Name         string    `json:"name" validate:"omitempty,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(320)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	Role         Role      `json:"role" gorm:"type:varchar(16);default:user" validate:"omitempty,oneof=user store_owner admin"`
	LastSignedIn time.Time `json:"last_signed_in"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile extends a User with marketplace-facing contact details.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"` // same value as User.ID
	FullName  string    `json:"full_name" validate:"required,min=3,max=100"`
	AvatarURL string    `json:"avatar_url" validate:"omitempty,url"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	City      string    `json:"city" validate:"omitempty,max=100"`
	State     string    `json:"state" validate:"omitempty,max=100"`
	Zip       string    `json:"zip" validate:"omitempty,max=20"`
	CreatedAt time.Time `json:"created_at"`
}
