package handlers

import (
	"github.com/gofiber/fiber/v2"

	"automarket/internal/middleware"
	"automarket/internal/services"
)

// StoreHandler handles HTTP requests for stores and store analytics.
type StoreHandler struct {
	storeService     *services.StoreService
	analyticsService *services.AnalyticsService
	authService      *services.AuthService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(
	storeService *services.StoreService,
	analyticsService *services.AnalyticsService,
	authService *services.AuthService,
) *StoreHandler {
	return &StoreHandler{
		storeService:     storeService,
		analyticsService: analyticsService,
		authService:      authService,
	}
}

// RegisterRoutes registers the store routes with the Fiber app.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	authRequired := middleware.AuthRequired(h.authService)

	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleList)
	storeRoutes.Get("/slug/:slug", h.HandleGetBySlug)
	storeRoutes.Get("/:id", h.HandleGet)

	storeRoutes.Post("/", authRequired, h.HandleCreate)
	storeRoutes.Put("/:id", authRequired, h.HandleUpdate)
	storeRoutes.Get("/:id/api-key", authRequired, h.HandleAPIKey)
	storeRoutes.Post("/:id/api-key/rotate", authRequired, h.HandleRotateAPIKey)
	storeRoutes.Get("/:id/analytics", authRequired, h.HandleAnalytics)
	storeRoutes.Get("/:id/analytics/most-viewed", authRequired, h.HandleMostViewed)

	router.Get("/my/stores", authRequired, h.HandleMyStores)
}

// HandleList returns a page of stores.
func (h *StoreHandler) HandleList(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	stores, total, err := h.storeService.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stores": stores, "total": total})
}

// HandleGet returns one store.
func (h *StoreHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	store, err := h.storeService.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"store": store})
}

// HandleGetBySlug returns one store by its slug.
func (h *StoreHandler) HandleGetBySlug(c *fiber.Ctx) error {
	store, err := h.storeService.GetBySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"store": store})
}

// HandleCreate registers a store for the authenticated owner. The issued
// API key is returned once on creation.
func (h *StoreHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.StoreInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	store, err := h.storeService.Create(middleware.CurrentUser(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store created",
		"store":   store,
		"api_key": store.APIKey,
	})
}

// HandleUpdate replaces the editable fields of a store.
func (h *StoreHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var input services.StoreInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	store, err := h.storeService.Update(middleware.CurrentUser(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Store updated",
		"store":   store,
	})
}

// HandleMyStores returns the stores of the authenticated owner.
func (h *StoreHandler) HandleMyStores(c *fiber.Ctx) error {
	stores, err := h.storeService.GetMyStores(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stores": stores})
}

// HandleAPIKey reveals the bulk-import key to the store owner.
func (h *StoreHandler) HandleAPIKey(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	key, err := h.storeService.APIKey(middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"api_key": key})
}

// HandleRotateAPIKey replaces the bulk-import key of a store.
func (h *StoreHandler) HandleRotateAPIKey(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	key, err := h.storeService.RotateAPIKey(middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "API key rotated",
		"api_key": key,
	})
}

// HandleAnalytics returns aggregate stats for one store. Owner or admin
// only.
func (h *StoreHandler) HandleAnalytics(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	stats, err := h.analyticsService.StoreAnalytics(middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// HandleMostViewed returns the most viewed listings of one store.
func (h *StoreHandler) HandleMostViewed(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	limit := c.QueryInt("limit", 10)
	cars, err := h.analyticsService.MostViewed(middleware.CurrentUser(c), id, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"cars": cars})
}
