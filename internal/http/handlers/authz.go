package handlers

import (
	applog "lumina/internal/log"
	"lumina/internal/domain"
	"lumina/internal/state"

	"github.com/gofiber/fiber/v2"
)

// Role checks here gate routes only; the state layer's mutations do not
// re-verify the caller. That mirrors the advisory trust model of the
// original application.

func RequireUser(st *state.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := st.CurrentUser()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

func RequireAdmin(st *state.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := st.CurrentUser()
		if !ok || u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		c.Locals("userID", u.ID)
		return c.Next()
	}
}
