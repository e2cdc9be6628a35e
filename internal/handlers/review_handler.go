package handlers

import (
	"github.com/gofiber/fiber/v2"

	"automarket/internal/middleware"
	"automarket/internal/services"
)

// ReviewHandler handles HTTP requests for seller ratings.
type ReviewHandler struct {
	reviewService *services.ReviewService
	authService   *services.AuthService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService, authService *services.AuthService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/reviews", middleware.AuthRequired(h.authService), h.HandleCreate)
	router.Get("/sellers/:id/reviews", h.HandleBySeller)
}

// HandleCreate records a rating for a seller.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	review, err := h.reviewService.Create(middleware.CurrentUser(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review created",
		"review":  review,
	})
}

// HandleBySeller returns a seller's reviews with their aggregate rating.
func (h *ReviewHandler) HandleBySeller(c *fiber.Ctx) error {
	sellerID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	reviews, err := h.reviewService.BySeller(sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}
