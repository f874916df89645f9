package handlers

import (
	"lumina/internal/state"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	State *state.Store
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.State.Notifications())
}

// Dismiss is idempotent: dismissing an id the expiry timer already removed
// answers 204 all the same.
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	h.State.RemoveNotification(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
