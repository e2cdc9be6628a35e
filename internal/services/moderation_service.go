package services

import (
	"fmt"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// ModerationService applies admin-only state overrides to listings, users
// and stores, appending one audit record per action.
type ModerationService struct {
	carRepo        repositories.CarRepository
	userRepo       repositories.UserRepository
	storeRepo      repositories.StoreRepository
	moderationRepo repositories.ModerationRepository
	notifier       Notifier
}

// NewModerationService creates a new ModerationService.
func NewModerationService(
	carRepo repositories.CarRepository,
	userRepo repositories.UserRepository,
	storeRepo repositories.StoreRepository,
	moderationRepo repositories.ModerationRepository,
	notifier Notifier,
) *ModerationService {
	return &ModerationService{
		carRepo:        carRepo,
		userRepo:       userRepo,
		storeRepo:      storeRepo,
		moderationRepo: moderationRepo,
		notifier:       notifier,
	}
}

func requireAdmin(actor *models.User) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.Forbidden("access restricted to administrators")
	}
	return nil
}

func (s *ModerationService) appendLog(adminID uint, targetType string, targetID uint, action, reason string) error {
	return s.moderationRepo.Append(&models.ModerationLog{
		AdminID:    adminID,
		TargetType: targetType,
		TargetID:   targetID,
		Action:     action,
		Reason:     reason,
	})
}

// ModerateListing unconditionally sets a listing's status. Admins are not
// subject to per-user quotas when reactivating on a seller's behalf.
func (s *ModerationService) ModerateListing(admin *models.User, carID uint, status models.CarStatus, reason string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	switch status {
	case models.CarStatusActive, models.CarStatusBanned, models.CarStatusDraft:
	default:
		return apperrors.Validation("moderation cannot set status %q", status)
	}
	if _, err := s.carRepo.GetByID(carID); err != nil {
		return err
	}
	if err := s.carRepo.UpdateStatus(carID, status); err != nil {
		return err
	}
	if err := s.appendLog(admin.ID, models.ModerationTargetCar, carID,
		fmt.Sprintf("set_status_%s", status), reason); err != nil {
		return err
	}
	notify(s.notifier, "listing.moderated", map[string]interface{}{
		"car_id": carID,
		"status": string(status),
		"reason": reason,
	})
	return nil
}

// UpdateUserRole sets a user's role and logs the change. No validation that
// a downgrade leaves a store orphaned.
func (s *ModerationService) UpdateUserRole(admin *models.User, userID uint, role models.Role) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if !role.Valid() {
		return apperrors.Validation("invalid role %q", role)
	}
	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		return err
	}
	return s.appendLog(admin.ID, models.ModerationTargetUser, userID,
		fmt.Sprintf("set_role_%s", role), "")
}

// BanUser sets BANNED on every listing owned by the user. The user account
// itself carries no suspension flag. Exactly one audit record per ban
// action, not one per affected listing.
func (s *ModerationService) BanUser(admin *models.User, userID uint, reason string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}
	affected, err := s.carRepo.BanBySeller(userID)
	if err != nil {
		return err
	}
	if err := s.appendLog(admin.ID, models.ModerationTargetUser, userID, "ban_user", reason); err != nil {
		return err
	}
	notify(s.notifier, "user.banned", map[string]interface{}{
		"user_id":           userID,
		"listings_affected": affected,
		"reason":            reason,
	})
	return nil
}

// VerifyStore toggles a store's verification flag and logs the change.
func (s *ModerationService) VerifyStore(admin *models.User, storeID uint, verified bool) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if err := s.storeRepo.SetVerified(storeID, verified); err != nil {
		return err
	}
	action := "verify_store"
	if !verified {
		action = "unverify_store"
	}
	return s.appendLog(admin.ID, models.ModerationTargetStore, storeID, action, "")
}

// Logs returns a page of the audit trail.
func (s *ModerationService) Logs(admin *models.User, limit, offset int) ([]models.ModerationLog, int64, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, 0, err
	}
	return s.moderationRepo.List(limit, offset)
}

// ListUsers returns a page of users for the admin dashboard, optionally
// filtered by role.
func (s *ModerationService) ListUsers(admin *models.User, limit, offset int, role models.Role) ([]models.User, int64, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, 0, err
	}
	if role != "" && !role.Valid() {
		return nil, 0, apperrors.Validation("invalid role %q", role)
	}
	return s.userRepo.List(limit, offset, role)
}

// ListCars returns a page of listings for moderation, optionally filtered
// by status.
func (s *ModerationService) ListCars(admin *models.User, limit, offset int, status models.CarStatus) ([]models.Car, int64, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, 0, err
	}
	if status != "" && !status.Valid() {
		return nil, 0, apperrors.Validation("invalid listing status %q", status)
	}
	return s.carRepo.Search(repositories.CarFilters{Status: string(status)}, limit, offset)
}

// ListStores returns a page of stores for the admin dashboard.
func (s *ModerationService) ListStores(admin *models.User, limit, offset int) ([]models.Store, int64, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, 0, err
	}
	return s.storeRepo.List(limit, offset)
}
