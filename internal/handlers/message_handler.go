package handlers

import (
	"github.com/gofiber/fiber/v2"

	"automarket/internal/middleware"
	"automarket/internal/services"
)

// MessageHandler handles HTTP requests for buyer-seller messaging.
type MessageHandler struct {
	messageService *services.MessageService
	authService    *services.AuthService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService, authService *services.AuthService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		authService:    authService,
	}
}

// RegisterRoutes registers the messaging routes with the Fiber app.
func (h *MessageHandler) RegisterRoutes(router fiber.Router) {
	messageRoutes := router.Group("/messages", middleware.AuthRequired(h.authService))
	messageRoutes.Post("/", h.HandleSend)
	messageRoutes.Get("/", h.HandleMine)
	messageRoutes.Get("/conversation", h.HandleConversation)
	messageRoutes.Patch("/read", h.HandleMarkRead)
}

// HandleSend delivers one message about a listing.
func (h *MessageHandler) HandleSend(c *fiber.Ctx) error {
	var input services.MessageInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	message, err := h.messageService.Send(middleware.CurrentUser(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message sent",
		"data":    message,
	})
}

// HandleMine returns all messages the authenticated user sent or received.
func (h *MessageHandler) HandleMine(c *fiber.Ctx) error {
	messages, err := h.messageService.MyMessages(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// HandleConversation returns the thread between the authenticated user and
// another user about one listing, oldest first.
func (h *MessageHandler) HandleConversation(c *fiber.Ctx) error {
	carID := uint(c.QueryInt("car_id", 0))
	otherUserID := uint(c.QueryInt("user_id", 0))
	messages, err := h.messageService.Conversation(middleware.CurrentUser(c), carID, otherUserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// MarkReadRequest represents the request body for marking messages read.
type MarkReadRequest struct {
	IDs []uint `json:"ids"`
}

// HandleMarkRead marks received messages as read.
func (h *MessageHandler) HandleMarkRead(c *fiber.Ctx) error {
	var req MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.messageService.MarkRead(middleware.CurrentUser(c), req.IDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Messages marked read"})
}
