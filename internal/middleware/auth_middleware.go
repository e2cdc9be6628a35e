package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"automarket/internal/models"
	"automarket/internal/services"
)

// CurrentUserKey is the Locals key under which the authenticated user is
// stored.
const CurrentUserKey = "current_user"

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a Fiber middleware rejecting requests without a valid
// bearer token. The resolved user is stored in Locals for subsequent
// handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.GetCurrentUser(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(CurrentUserKey, user)
		c.Locals("token", token)
		return c.Next()
	}
}

// AuthOptional resolves the current user when a valid bearer token is
// present and continues anonymously otherwise. Used on public reads that
// attribute views to signed-in users.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if user, err := authService.GetCurrentUser(token); err == nil {
				c.Locals(CurrentUserKey, user)
				c.Locals("token", token)
			}
		}
		return c.Next()
	}
}

// RoleRequired rejects authenticated requests whose user holds none of the
// given roles. It must run after AuthRequired.
func RoleRequired(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(CurrentUserKey).(*models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient role for this operation",
		})
	}
}

// CurrentUser returns the authenticated user stored by AuthRequired or
// AuthOptional, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CurrentUserKey).(*models.User)
	return user
}
