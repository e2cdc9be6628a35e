package handlers

import (
	"encoding/base64"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"automarket/internal/apperrors"
	"automarket/internal/middleware"
	"automarket/internal/models"
	"automarket/internal/repositories"
	"automarket/internal/services"
)

// CarHandler handles HTTP requests for listings, photos and search.
type CarHandler struct {
	carService  *services.CarService
	authService *services.AuthService
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(carService *services.CarService, authService *services.AuthService) *CarHandler {
	return &CarHandler{
		carService:  carService,
		authService: authService,
	}
}

// RegisterRoutes registers the listing routes with the Fiber app.
func (h *CarHandler) RegisterRoutes(router fiber.Router) {
	authRequired := middleware.AuthRequired(h.authService)

	carRoutes := router.Group("/cars")
	carRoutes.Get("/", h.HandleSearch)
	carRoutes.Get("/:id", middleware.AuthOptional(h.authService), h.HandleGet)
	carRoutes.Get("/:id/photos", h.HandleListPhotos)

	carRoutes.Post("/", authRequired, h.HandleCreate)
	carRoutes.Put("/:id", authRequired, h.HandleUpdate)
	carRoutes.Patch("/:id/status", authRequired, h.HandleSetStatus)
	carRoutes.Delete("/:id", authRequired, h.HandleDelete)
	carRoutes.Post("/:id/photos", authRequired, h.HandleUploadPhoto)

	router.Get("/my/cars", authRequired, h.HandleMyCars)
	router.Delete("/photos/:id", authRequired, h.HandleDeletePhoto)
	router.Put("/photos/order", authRequired, h.HandleReorderPhotos)
}

func parsePriceParam(c *fiber.Ctx, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.Validation("invalid %s %q", name, raw)
	}
	return &price, nil
}

// HandleSearch runs the public listing search. Without an explicit status
// filter only ACTIVE listings are returned.
func (h *CarHandler) HandleSearch(c *fiber.Ctx) error {
	minPrice, err := parsePriceParam(c, "min_price")
	if err != nil {
		return respondError(c, err)
	}
	maxPrice, err := parsePriceParam(c, "max_price")
	if err != nil {
		return respondError(c, err)
	}

	status := c.Query("status", string(models.CarStatusActive))
	filters := repositories.CarFilters{
		Brand:        c.Query("brand"),
		Model:        c.Query("model"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		MinYear:      c.QueryInt("min_year", 0),
		MaxYear:      c.QueryInt("max_year", 0),
		Transmission: c.Query("transmission"),
		Fuel:         c.Query("fuel"),
		Status:       status,
		SellerID:     uint(c.QueryInt("seller_id", 0)),
		StoreID:      uint(c.QueryInt("store_id", 0)),
		Search:       c.Query("q"),
	}

	limit, offset := pageParams(c)
	result, err := h.carService.Search(filters, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGet returns one listing and records a view. Signed-in viewers are
// attributed.
func (h *CarHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	car, err := h.carService.GetByID(id, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"car": car})
}

// HandleCreate inserts a new DRAFT listing for the authenticated seller.
func (h *CarHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.CarInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing car request body: %v", err)
		return respondBadBody(c, err)
	}
	car, err := h.carService.Create(middleware.CurrentUser(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Listing created",
		"car":     car,
	})
}

// HandleUpdate replaces the editable fields of a listing.
func (h *CarHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var input services.CarInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	car, err := h.carService.Update(middleware.CurrentUser(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Listing updated",
		"car":     car,
	})
}

// StatusRequest represents the request body for a status transition.
type StatusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus transitions a listing between DRAFT, ACTIVE and SOLD.
func (h *CarHandler) HandleSetStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.carService.SetStatus(middleware.CurrentUser(c), id, models.CarStatus(req.Status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}

// HandleDelete removes a listing and its photos.
func (h *CarHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.carService.Delete(middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Listing deleted"})
}

// HandleMyCars returns the listings of the authenticated seller across all
// statuses.
func (h *CarHandler) HandleMyCars(c *fiber.Ctx) error {
	cars, err := h.carService.GetMyCars(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"cars": cars})
}

// PhotoUploadRequest represents the request body for a photo upload. The
// image travels base64 encoded.
type PhotoUploadRequest struct {
	ImageBase64 string `json:"image_base64"`
	OrderIndex  int    `json:"order_index"`
}

// HandleUploadPhoto derives the three renditions and attaches the photo to
// the listing.
func (h *CarHandler) HandleUploadPhoto(c *fiber.Ctx) error {
	carID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req PhotoUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	imageData, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return respondError(c, apperrors.Validation("image_base64 is not valid base64"))
	}
	photo, err := h.carService.AttachPhoto(middleware.CurrentUser(c), carID, imageData, req.OrderIndex)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Photo uploaded",
		"photo":   photo,
	})
}

// HandleListPhotos returns the photos of a listing in display order.
func (h *CarHandler) HandleListPhotos(c *fiber.Ctx) error {
	carID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	photos, err := h.carService.ListPhotos(carID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"photos": photos})
}

// HandleDeletePhoto removes one photo from a listing.
func (h *CarHandler) HandleDeletePhoto(c *fiber.Ctx) error {
	photoID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.carService.DeletePhoto(middleware.CurrentUser(c), photoID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Photo deleted"})
}

// ReorderRequest represents the request body for a photo reorder.
type ReorderRequest struct {
	Updates []services.PhotoOrderUpdate `json:"updates"`
}

// HandleReorderPhotos applies a batch of order-index moves.
func (h *CarHandler) HandleReorderPhotos(c *fiber.Ctx) error {
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.carService.ReorderPhotos(middleware.CurrentUser(c), req.Updates); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Photo order updated"})
}
