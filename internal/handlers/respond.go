package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"automarket/internal/apperrors"
)

// defaultPageSize is used when a list endpoint receives no limit parameter.
const defaultPageSize = 20

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindQuotaExceeded, apperrors.KindCapacity:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps a taxonomy error to its HTTP status and writes the
// standard error body. Internal details are logged, never surfaced.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperrors.KindOf(err)
	message := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if kind == apperrors.KindInternal {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
		message = "internal server error"
	}
	return c.Status(statusForKind(kind)).JSON(fiber.Map{
		"error":   string(kind),
		"message": message,
	})
}

func respondBadBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   string(apperrors.KindValidation),
		"message": "Invalid request body",
		"detail":  err.Error(),
	})
}

// pageParams reads limit and offset query parameters with defaults.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	offset = c.QueryInt("offset", 0)
	return limit, offset
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.Validation("invalid %s %q", name, raw)
	}
	return uint(id), nil
}
