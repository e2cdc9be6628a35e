package handlers

import (
	"github.com/gofiber/fiber/v2"

	"automarket/internal/middleware"
	"automarket/internal/models"
	"automarket/internal/services"
)

// AdminHandler handles HTTP requests for moderation and platform analytics.
// Every route requires the admin role.
type AdminHandler struct {
	moderationService *services.ModerationService
	analyticsService  *services.AnalyticsService
	authService       *services.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	moderationService *services.ModerationService,
	analyticsService *services.AnalyticsService,
	authService *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
		analyticsService:  analyticsService,
		authService:       authService,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin",
		middleware.AuthRequired(h.authService),
		middleware.RoleRequired(models.RoleAdmin))

	adminRoutes.Get("/dashboard", h.HandleDashboard)
	adminRoutes.Get("/users", h.HandleListUsers)
	adminRoutes.Patch("/users/:id/role", h.HandleUpdateRole)
	adminRoutes.Post("/users/:id/ban", h.HandleBanUser)
	adminRoutes.Get("/cars", h.HandleListCars)
	adminRoutes.Patch("/cars/:id/status", h.HandleModerateListing)
	adminRoutes.Get("/stores", h.HandleListStores)
	adminRoutes.Patch("/stores/:id/verify", h.HandleVerifyStore)
	adminRoutes.Get("/logs", h.HandleLogs)
	adminRoutes.Get("/analytics/per-day", h.HandleCountPerDay)
	adminRoutes.Get("/analytics/top", h.HandleTopByGroup)
}

// HandleDashboard returns platform-wide counters.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	stats, err := h.analyticsService.Dashboard(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// HandleListUsers returns a page of users, optionally filtered by role.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	role := models.Role(c.Query("role"))
	users, total, err := h.moderationService.ListUsers(middleware.CurrentUser(c), limit, offset, role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "total": total})
}

// RoleRequest represents the request body for a role change.
type RoleRequest struct {
	Role string `json:"role"`
}

// HandleUpdateRole changes a user's role with an audit log entry.
func (h *AdminHandler) HandleUpdateRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.moderationService.UpdateUserRole(middleware.CurrentUser(c), id, models.Role(req.Role)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role updated"})
}

// ReasonRequest represents the request body carrying a moderation reason.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// HandleBanUser bans every listing of a user with one audit log entry.
func (h *AdminHandler) HandleBanUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req ReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.moderationService.BanUser(middleware.CurrentUser(c), id, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User banned"})
}

// HandleListCars returns a page of listings across all sellers, optionally
// filtered by status.
func (h *AdminHandler) HandleListCars(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	status := models.CarStatus(c.Query("status"))
	cars, total, err := h.moderationService.ListCars(middleware.CurrentUser(c), limit, offset, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"cars": cars, "total": total})
}

// ModerationRequest represents the request body for a moderation transition.
type ModerationRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// HandleModerateListing transitions any listing regardless of ownership or
// quota, with an audit log entry.
func (h *AdminHandler) HandleModerateListing(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req ModerationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.moderationService.ModerateListing(middleware.CurrentUser(c), id, models.CarStatus(req.Status), req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Listing moderated"})
}

// HandleListStores returns a page of stores for moderation.
func (h *AdminHandler) HandleListStores(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	stores, total, err := h.moderationService.ListStores(middleware.CurrentUser(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stores": stores, "total": total})
}

// VerifyRequest represents the request body for a store verification flip.
type VerifyRequest struct {
	Verified bool `json:"verified"`
}

// HandleVerifyStore sets or clears a store's verified badge.
func (h *AdminHandler) HandleVerifyStore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.moderationService.VerifyStore(middleware.CurrentUser(c), id, req.Verified); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store verification updated"})
}

// HandleLogs returns a page of the moderation audit trail, newest first.
func (h *AdminHandler) HandleLogs(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	logs, total, err := h.moderationService.Logs(middleware.CurrentUser(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs, "total": total})
}

// HandleCountPerDay returns creation counts per day for one entity over a
// trailing window.
func (h *AdminHandler) HandleCountPerDay(c *fiber.Ctx) error {
	entity := c.Query("entity", services.EntityCars)
	days := c.QueryInt("days", 30)
	storeID := uint(c.QueryInt("store_id", 0))
	counts, err := h.analyticsService.CountPerDay(entity, days, storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"counts": counts})
}

// HandleTopByGroup returns listing counts grouped by brand, fuel or
// transmission.
func (h *AdminHandler) HandleTopByGroup(c *fiber.Ctx) error {
	group := c.Query("group", "brand")
	limit := c.QueryInt("limit", 10)
	groups, err := h.analyticsService.TopByGroup(group, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}
