package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"automarket/internal/handlers"
	"automarket/internal/models"
	"automarket/internal/repositories"
	"automarket/internal/services"
	"automarket/pkg/storage"
)

const ownerEmail = "root@automarket.test"

// setupApp builds the full application against in-memory SQLite. No broker
// is wired; notifications are silently skipped.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
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

	userRepo := repositories.NewGORMUserRepository(db)
	carRepo := repositories.NewGORMCarRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	messageRepo := repositories.NewGORMMessageRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	transactionRepo := repositories.NewGORMTransactionRepository(db)
	moderationRepo := repositories.NewGORMModerationRepository(db)
	importRepo := repositories.NewGORMImportRepository(db)
	analyticsRepo := repositories.NewGORMAnalyticsRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret", ownerEmail)
	profileService := services.NewProfileService(userRepo)
	carService := services.NewCarService(carRepo, storage.NewMemoryStorage(), nil)
	storeService := services.NewStoreService(storeRepo)
	messageService := services.NewMessageService(messageRepo, carRepo, nil)
	reviewService := services.NewReviewService(reviewRepo)
	transactionService := services.NewTransactionService(transactionRepo, carRepo, nil)
	moderationService := services.NewModerationService(carRepo, userRepo, storeRepo, moderationRepo, nil)
	analyticsService := services.NewAnalyticsService(analyticsRepo, storeRepo)
	importService := services.NewImportService(storeRepo, userRepo, importRepo, carService, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, profileService).RegisterRoutes(apiV1)
	handlers.NewCarHandler(carService, authService).RegisterRoutes(apiV1)
	handlers.NewStoreHandler(storeService, analyticsService, authService).RegisterRoutes(apiV1)
	handlers.NewMessageHandler(messageService, authService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService, authService).RegisterRoutes(apiV1)
	handlers.NewTransactionHandler(transactionService, authService).RegisterRoutes(apiV1)
	handlers.NewAdminHandler(moderationService, analyticsService, authService).RegisterRoutes(apiV1)
	handlers.NewImportHandler(importService, authService).RegisterRoutes(apiV1)

	return app, db
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	decoded := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	resp.Body.Close()
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": password, "name": "Test User",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func carPayload(brand string) map[string]interface{} {
	return map[string]interface{}{
		"brand":        brand,
		"model":        "Corolla",
		"version":      "XEi 2.0",
		"year_fab":     2020,
		"year_model":   2021,
		"price":        "95000.00",
		"mileage":      42000,
		"transmission": "AUTOMATIC",
		"fuel":         "FLEX",
		"color":        "Silver",
	}
}

func createCar(t *testing.T, app *fiber.App, token, brand string) uint {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/cars", token, carPayload(brand))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	car, _ := body["car"].(map[string]interface{})
	assert.Equal(t, "DRAFT", car["status"])
	id, _ := car["id"].(float64)
	assert.NotZero(t, id)
	return uint(id)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	payload := map[string]string{"email": "alice@example.com", "password": "password123", "name": "Alice"}
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])

	// Duplicate registration conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password is rejected without revealing which part failed.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := registerAndLogin(t, app, "bob@example.com", "password123")
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	user, _ := body["user"].(map[string]interface{})
	assert.Equal(t, "bob@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
}

func TestListingLifecycleAndQuota(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "seller@example.com", "password123")

	first := createCar(t, app, token, "Toyota")
	second := createCar(t, app, token, "Honda")

	// Drafts are invisible to the public search.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/cars?limit=20", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total"])

	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/cars/%d/status", first), token,
		map[string]string{"status": "ACTIVE"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A plain user holds at most one ACTIVE listing.
	resp, body = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/cars/%d/status", second), token,
		map[string]string{"status": "ACTIVE"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "QUOTA_EXCEEDED", body["error"])

	// Selling the first frees the slot.
	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/cars/%d/status", first), token,
		map[string]string{"status": "SOLD"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/cars/%d/status", second), token,
		map[string]string{"status": "ACTIVE"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/cars?limit=20", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	// Unauthenticated writes are rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/cars", "", carPayload("Fiat"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Another user cannot edit the listing.
	intruder := registerAndLogin(t, app, "intruder@example.com", "password123")
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/cars/%d", second), intruder, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCarValidation(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "seller@example.com", "password123")

	bad := carPayload("Toyota")
	bad["year_fab"] = 2022
	bad["year_model"] = 2021
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/cars", token, bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])

	bad = carPayload("Toyota")
	bad["price"] = "0"
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/cars", token, bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminModeration(t *testing.T) {
	app, _ := setupApp(t)

	// The configured owner email signs up straight into the admin role.
	adminToken := registerAndLogin(t, app, ownerEmail, "password123")
	sellerToken := registerAndLogin(t, app, "seller@example.com", "password123")
	carID := createCar(t, app, sellerToken, "Toyota")

	// Plain users cannot reach the admin surface.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/admin/dashboard", sellerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/cars/%d/status", carID), adminToken,
		map[string]string{"status": "BANNED", "reason": "stolen vehicle report"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/cars/%d", carID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	car, _ := body["car"].(map[string]interface{})
	assert.Equal(t, "BANNED", car["status"])

	// The action landed in the audit trail.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/admin/logs", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	logs, _ := body["logs"].([]interface{})
	assert.Len(t, logs, 1)
	entry, _ := logs[0].(map[string]interface{})
	assert.Equal(t, "set_status_BANNED", entry["action"])
	assert.Equal(t, "stolen vehicle report", entry["reason"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	stats, _ := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_users"])
}

func TestStoreAndBulkImport(t *testing.T) {
	app, _ := setupApp(t)

	adminToken := registerAndLogin(t, app, ownerEmail, "password123")
	dealerToken := registerAndLogin(t, app, "dealer@example.com", "password123")

	// Promote the dealer so they may open a store.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", dealerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	dealer, _ := body["user"].(map[string]interface{})
	dealerID := uint((dealer["id"]).(float64))

	resp, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/users/%d/role", dealerID), adminToken,
		map[string]string{"role": "store_owner"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/stores", dealerToken, map[string]string{
		"name":     "Downtown Motors",
		"slug":     "downtown-motors",
		"document": "12.345.678/0001-90",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	apiKey, _ := body["api_key"].(string)
	assert.NotEmpty(t, apiKey)
	store, _ := body["store"].(map[string]interface{})
	storeID := uint((store["id"]).(float64))

	// Bulk import: one good item, one bad, reported per item.
	badItem := carPayload("Honda")
	badItem["price"] = "-1"
	importBody := map[string]interface{}{
		"items": []map[string]interface{}{carPayload("Toyota"), badItem},
	}
	raw, err := json.Marshal(importBody)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/cars", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)
	httpResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	result := map[string]interface{}{}
	assert.NoError(t, json.NewDecoder(httpResp.Body).Decode(&result))
	httpResp.Body.Close()
	assert.Equal(t, float64(2), result["total"])
	assert.Equal(t, float64(1), result["succeeded"])
	assert.Equal(t, float64(1), result["failed"])

	// A wrong key is unauthorized.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/import/cars", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "bogus")
	httpResp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpResp.StatusCode)
	httpResp.Body.Close()

	// The imported listing sits in the store's pool.
	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/cars?status=DRAFT&store_id=%d", storeID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
}

func TestPhotoUploadAndOrdering(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "seller@example.com", "password123")
	carID := createCar(t, app, token, "Toyota")

	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for x := 0; x < 32; x++ {
		for y := 0; y < 24; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 7), B: uint8(y * 9), A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, jpeg.Encode(&buf, img, nil))
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/cars/%d/photos", carID), token,
		map[string]interface{}{"image_base64": encoded, "order_index": 0})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	photo, _ := body["photo"].(map[string]interface{})
	assert.NotEmpty(t, photo["thumb_url"])
	assert.NotEmpty(t, photo["medium_url"])
	assert.NotEmpty(t, photo["large_url"])

	// Garbage image data is a validation failure.
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/cars/%d/photos", carID), token,
		map[string]interface{}{"image_base64": base64.StdEncoding.EncodeToString([]byte("garbage")), "order_index": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/cars/%d/photos", carID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	photos, _ := body["photos"].([]interface{})
	assert.Len(t, photos, 1)
}

func TestMessagingAndReviews(t *testing.T) {
	app, _ := setupApp(t)
	sellerToken := registerAndLogin(t, app, "seller@example.com", "password123")
	buyerToken := registerAndLogin(t, app, "buyer@example.com", "password123")
	carID := createCar(t, app, sellerToken, "Toyota")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", sellerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	seller, _ := body["user"].(map[string]interface{})
	sellerID := uint((seller["id"]).(float64))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/messages", buyerToken, map[string]interface{}{
		"car_id":      carID,
		"receiver_id": sellerID,
		"content":     "Is it still available?",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/messages", sellerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	messages, _ := body["messages"].([]interface{})
	assert.Len(t, messages, 1)

	// One review per buyer and listing.
	review := map[string]interface{}{"seller_id": sellerID, "car_id": carID, "rating": 5, "comment": "smooth deal"}
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/reviews", buyerToken, review)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/reviews", buyerToken, review)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/sellers/%d/reviews", sellerID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	stats, _ := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(5), stats["average"])
	assert.Equal(t, float64(1), stats["count"])
}
