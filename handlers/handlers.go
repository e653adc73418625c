// handlers/handlers.go - Shared handler wiring and error mapping
package handlers

import (
	"errors"
	"strconv"

	"meritledger/services"

	"github.com/gofiber/fiber/v2"
)

var (
	registry *services.Registry
	eventBus *services.EventBus
)

// InitHandlers wires the registry and event bus into the handler package.
// Must be called before any route is served.
func InitHandlers(reg *services.Registry, bus *services.EventBus) {
	registry = reg
	eventBus = bus
}

// statusForError maps each registry error kind to an HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrAchievementNotFound),
		errors.Is(err, services.ErrCertificationNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrRewardAlreadyClaimed),
		errors.Is(err, services.ErrLimitExceeded):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInsufficientBalance):
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
