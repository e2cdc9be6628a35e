package services_test

import (
	"github.com/stretchr/testify/mock"

	"automarket/internal/models"
	"automarket/internal/repositories"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(id uint, role models.Role) error {
	args := m.Called(id, role)
	return args.Error(0)
}

func (m *MockUserRepository) List(limit, offset int, role models.Role) ([]models.User, int64, error) {
	args := m.Called(limit, offset, role)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CreateProfile(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfile(userID uint) (*models.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

// MockCarRepository is a mock implementation of repositories.CarRepository
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(car *models.Car) error {
	args := m.Called(car)
	return args.Error(0)
}

func (m *MockCarRepository) GetByID(id uint) (*models.Car, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarRepository) Update(car *models.Car) error {
	args := m.Called(car)
	return args.Error(0)
}

func (m *MockCarRepository) UpdateStatus(id uint, status models.CarStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockCarRepository) ActivateWithQuota(id, sellerID uint, maxActive int) error {
	args := m.Called(id, sellerID, maxActive)
	return args.Error(0)
}

func (m *MockCarRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCarRepository) GetBySellerID(sellerID uint) ([]models.Car, error) {
	args := m.Called(sellerID)
	return args.Get(0).([]models.Car), args.Error(1)
}

func (m *MockCarRepository) GetByStoreID(storeID uint) ([]models.Car, error) {
	args := m.Called(storeID)
	return args.Get(0).([]models.Car), args.Error(1)
}

func (m *MockCarRepository) BanBySeller(sellerID uint) (int64, error) {
	args := m.Called(sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarRepository) Search(filters repositories.CarFilters, limit, offset int) ([]models.Car, int64, error) {
	args := m.Called(filters, limit, offset)
	return args.Get(0).([]models.Car), args.Get(1).(int64), args.Error(2)
}

func (m *MockCarRepository) AddPhoto(photo *models.CarPhoto) error {
	args := m.Called(photo)
	return args.Error(0)
}

func (m *MockCarRepository) GetPhotos(carID uint) ([]models.CarPhoto, error) {
	args := m.Called(carID)
	return args.Get(0).([]models.CarPhoto), args.Error(1)
}

func (m *MockCarRepository) CountPhotos(carID uint) (int64, error) {
	args := m.Called(carID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarRepository) GetPhotoByID(photoID uint) (*models.CarPhoto, error) {
	args := m.Called(photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarPhoto), args.Error(1)
}

func (m *MockCarRepository) DeletePhoto(photoID uint) error {
	args := m.Called(photoID)
	return args.Error(0)
}

func (m *MockCarRepository) UpdatePhotoOrder(photoID uint, orderIndex int) error {
	args := m.Called(photoID, orderIndex)
	return args.Error(0)
}

func (m *MockCarRepository) AddView(view *models.CarView) error {
	args := m.Called(view)
	return args.Error(0)
}

// MockStoreRepository is a mock implementation of repositories.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(store *models.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreRepository) GetByID(id uint) (*models.Store, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) GetBySlug(slug string) (*models.Store, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByAPIKey(apiKey string) (*models.Store, error) {
	args := m.Called(apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByOwnerID(ownerID uint) ([]models.Store, error) {
	args := m.Called(ownerID)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepository) Update(store *models.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreRepository) SetVerified(id uint, verified bool) error {
	args := m.Called(id, verified)
	return args.Error(0)
}

func (m *MockStoreRepository) List(limit, offset int) ([]models.Store, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.Store), args.Get(1).(int64), args.Error(2)
}

// MockModerationRepository is a mock implementation of repositories.ModerationRepository
type MockModerationRepository struct {
	mock.Mock
}

func (m *MockModerationRepository) Append(entry *models.ModerationLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockModerationRepository) List(limit, offset int) ([]models.ModerationLog, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.ModerationLog), args.Get(1).(int64), args.Error(2)
}

// MockImportRepository is a mock implementation of repositories.ImportRepository
type MockImportRepository struct {
	mock.Mock
}

func (m *MockImportRepository) CreateJob(job *models.BulkImportJob) error {
	args := m.Called(job)
	return args.Error(0)
}

func (m *MockImportRepository) GetJob(id uint) (*models.BulkImportJob, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkImportJob), args.Error(1)
}

func (m *MockImportRepository) UpdateJob(job *models.BulkImportJob) error {
	args := m.Called(job)
	return args.Error(0)
}

// MockNotifier records published events without a broker.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}
