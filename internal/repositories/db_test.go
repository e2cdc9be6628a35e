package repositories_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"automarket/internal/models"
)

// testDB opens a fresh in-memory database with all tables migrated.
// TranslateError matches the production configuration so duplicate-key
// mapping behaves the same.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	// Every connection gets its own :memory: database; keep the pool at one.
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	assert.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Store{},
		&models.Car{},
		&models.CarPhoto{},
		&models.CarView{},
		&models.Message{},
		&models.Review{},
		&models.Transaction{},
		&models.ModerationLog{},
		&models.BulkImportJob{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		OpenID: "open-" + email,
		Email:  email,
		Role:   role,
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func seedCar(t *testing.T, db *gorm.DB, sellerID uint, brand string, status models.CarStatus) *models.Car {
	t.Helper()
	car := &models.Car{
		SellerID:     sellerID,
		Brand:        brand,
		Model:        "Model",
		Version:      "1.0",
		YearFab:      2020,
		YearModel:    2021,
		Price:        decimal.NewFromInt(50000),
		Transmission: models.TransmissionManual,
		Fuel:         models.FuelFlex,
		Color:        "Black",
		Status:       status,
	}
	assert.NoError(t, db.Create(car).Error)
	return car
}

func seedStore(t *testing.T, db *gorm.DB, ownerID uint, slug string) *models.Store {
	t.Helper()
	store := &models.Store{
		OwnerID:  ownerID,
		Name:     "Store " + slug,
		Slug:     slug,
		Document: "12.345.678/0001-90",
		APIKey:   fmt.Sprintf("key-%s-%d", slug, ownerID),
	}
	assert.NoError(t, db.Create(store).Error)
	return store
}
