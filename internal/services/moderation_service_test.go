package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/services"
)

func moderationFixture() (*services.ModerationService, *MockCarRepository, *MockUserRepository, *MockStoreRepository, *MockModerationRepository, *MockNotifier) {
	carRepo := new(MockCarRepository)
	userRepo := new(MockUserRepository)
	storeRepo := new(MockStoreRepository)
	moderationRepo := new(MockModerationRepository)
	notifier := new(MockNotifier)
	service := services.NewModerationService(carRepo, userRepo, storeRepo, moderationRepo, notifier)
	return service, carRepo, userRepo, storeRepo, moderationRepo, notifier
}

func adminUser() *models.User {
	return &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
}

func TestModerationService_RequiresAdmin(t *testing.T) {
	service, carRepo, _, _, _, _ := moderationFixture()

	seller := &models.User{ID: 2, Role: models.RoleStoreOwner}
	err := service.ModerateListing(seller, 10, models.CarStatusBanned, "spam")
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	err = service.BanUser(seller, 3, "spam")
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	_, _, err = service.Logs(seller, 20, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	carRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestModerationService_ModerateListingBypassesQuota(t *testing.T) {
	service, carRepo, _, _, moderationRepo, notifier := moderationFixture()

	car := &models.Car{ID: 10, SellerID: 4, Status: models.CarStatusDraft}
	carRepo.On("GetByID", uint(10)).Return(car, nil).Once()
	carRepo.On("UpdateStatus", uint(10), models.CarStatusActive).Return(nil).Once()
	moderationRepo.On("Append", mock.MatchedBy(func(entry *models.ModerationLog) bool {
		return entry.AdminID == 1 &&
			entry.TargetType == models.ModerationTargetCar &&
			entry.TargetID == 10 &&
			entry.Action == "set_status_ACTIVE"
	})).Return(nil).Once()
	notifier.On("Notify", "listing.moderated", mock.Anything).Return(nil).Once()

	err := service.ModerateListing(adminUser(), 10, models.CarStatusActive, "appeal accepted")
	assert.NoError(t, err)
	carRepo.AssertNotCalled(t, "ActivateWithQuota", mock.Anything, mock.Anything, mock.Anything)
	moderationRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestModerationService_ModerateListingRejectsSold(t *testing.T) {
	service, carRepo, _, _, _, _ := moderationFixture()

	err := service.ModerateListing(adminUser(), 10, models.CarStatusSold, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	carRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestModerationService_BanUserLogsOnce(t *testing.T) {
	service, carRepo, userRepo, _, moderationRepo, notifier := moderationFixture()

	target := &models.User{ID: 6, Role: models.RoleUser}
	userRepo.On("GetByID", uint(6)).Return(target, nil).Once()
	carRepo.On("BanBySeller", uint(6)).Return(int64(3), nil).Once()
	moderationRepo.On("Append", mock.MatchedBy(func(entry *models.ModerationLog) bool {
		return entry.TargetType == models.ModerationTargetUser &&
			entry.TargetID == 6 &&
			entry.Action == "ban_user" &&
			entry.Reason == "fraudulent listings"
	})).Return(nil).Once()
	notifier.On("Notify", "user.banned", mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["listings_affected"] == int64(3)
	})).Return(nil).Once()

	err := service.BanUser(adminUser(), 6, "fraudulent listings")
	assert.NoError(t, err)
	moderationRepo.AssertNumberOfCalls(t, "Append", 1)
	notifier.AssertExpectations(t)
}

func TestModerationService_BanUnknownUser(t *testing.T) {
	service, carRepo, userRepo, _, _, _ := moderationFixture()

	userRepo.On("GetByID", uint(99)).Return(nil, apperrors.NotFound("user not found")).Once()
	err := service.BanUser(adminUser(), 99, "spam")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	carRepo.AssertNotCalled(t, "BanBySeller", mock.Anything)
}

func TestModerationService_UpdateUserRole(t *testing.T) {
	service, _, userRepo, _, moderationRepo, _ := moderationFixture()

	userRepo.On("UpdateRole", uint(6), models.RoleStoreOwner).Return(nil).Once()
	moderationRepo.On("Append", mock.MatchedBy(func(entry *models.ModerationLog) bool {
		return entry.Action == "set_role_store_owner" && entry.TargetID == 6
	})).Return(nil).Once()

	err := service.UpdateUserRole(adminUser(), 6, models.RoleStoreOwner)
	assert.NoError(t, err)

	err = service.UpdateUserRole(adminUser(), 6, models.Role("superuser"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	moderationRepo.AssertExpectations(t)
}

func TestModerationService_VerifyStore(t *testing.T) {
	service, _, _, storeRepo, moderationRepo, _ := moderationFixture()

	storeRepo.On("SetVerified", uint(4), true).Return(nil).Once()
	moderationRepo.On("Append", mock.MatchedBy(func(entry *models.ModerationLog) bool {
		return entry.Action == "verify_store" && entry.TargetType == models.ModerationTargetStore
	})).Return(nil).Once()

	err := service.VerifyStore(adminUser(), 4, true)
	assert.NoError(t, err)

	storeRepo.On("SetVerified", uint(4), false).Return(nil).Once()
	moderationRepo.On("Append", mock.MatchedBy(func(entry *models.ModerationLog) bool {
		return entry.Action == "unverify_store"
	})).Return(nil).Once()

	err = service.VerifyStore(adminUser(), 4, false)
	assert.NoError(t, err)
	moderationRepo.AssertExpectations(t)
}

func TestModerationService_ListCarsFiltersByStatus(t *testing.T) {
	service, carRepo, _, _, _, _ := moderationFixture()

	carRepo.On("Search", mock.Anything, 20, 0).Return([]models.Car{{ID: 1}}, int64(1), nil).Once()

	cars, total, err := service.ListCars(adminUser(), 20, 0, models.CarStatusBanned)
	assert.NoError(t, err)
	assert.Len(t, cars, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = service.ListCars(adminUser(), 20, 0, models.CarStatus("LOST"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
