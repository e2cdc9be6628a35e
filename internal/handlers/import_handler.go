package handlers

import (
	"github.com/gofiber/fiber/v2"

	"automarket/internal/middleware"
	"automarket/internal/services"
)

// ImportHandler handles API-key authorized bulk listing imports.
type ImportHandler struct {
	importService *services.ImportService
	authService   *services.AuthService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *services.ImportService, authService *services.AuthService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		authService:   authService,
	}
}

// RegisterRoutes registers the import routes with the Fiber app. The bulk
// endpoint authenticates with the X-API-Key header instead of a JWT.
func (h *ImportHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/import/cars", h.HandleBulkImport)
	router.Get("/import/jobs/:id", middleware.AuthRequired(h.authService), h.HandleGetJob)
}

// BulkImportRequest represents the request body for a bulk import.
type BulkImportRequest struct {
	Items []services.CarInput `json:"items"`
}

// HandleBulkImport creates listings in bulk on behalf of the store matching
// the X-API-Key header. Items are reported individually; partial success
// still returns 200.
func (h *ImportHandler) HandleBulkImport(c *fiber.Ctx) error {
	var req BulkImportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	result, err := h.importService.BulkImport(c.Get("X-API-Key"), req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetJob returns one bulk import job for its store owner or an admin.
func (h *ImportHandler) HandleGetJob(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	job, err := h.importService.Job(middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}
