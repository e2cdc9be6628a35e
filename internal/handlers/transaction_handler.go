package handlers

import (
	"github.com/gofiber/fiber/v2"

	"automarket/internal/middleware"
	"automarket/internal/models"
	"automarket/internal/services"
)

// TransactionHandler handles HTTP requests for sale proposals.
type TransactionHandler struct {
	transactionService *services.TransactionService
	authService        *services.AuthService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService *services.TransactionService, authService *services.AuthService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		authService:        authService,
	}
}

// RegisterRoutes registers the transaction routes with the Fiber app.
func (h *TransactionHandler) RegisterRoutes(router fiber.Router) {
	transactionRoutes := router.Group("/transactions", middleware.AuthRequired(h.authService))
	transactionRoutes.Post("/", h.HandleCreate)
	transactionRoutes.Get("/", h.HandleMine)
	transactionRoutes.Patch("/:id/status", h.HandleSetStatus)
}

// HandleCreate records a PENDING proposal from the authenticated buyer.
func (h *TransactionHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.TransactionInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	transaction, err := h.transactionService.Create(middleware.CurrentUser(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Transaction created",
		"transaction": transaction,
	})
}

// HandleMine returns the proposals the authenticated user takes part in.
func (h *TransactionHandler) HandleMine(c *fiber.Ctx) error {
	transactions, err := h.transactionService.Mine(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transactions": transactions})
}

// HandleSetStatus moves a proposal between its lifecycle states. Buyer or
// seller only.
func (h *TransactionHandler) HandleSetStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.transactionService.UpdateStatus(middleware.CurrentUser(c), id, models.TransactionStatus(req.Status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction status updated"})
}
