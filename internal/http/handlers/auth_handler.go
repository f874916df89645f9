package handlers

import (
	applog "lumina/internal/log"
	"lumina/internal/state"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	State *state.Store
}

// Login accepts an optional password: an email-only login succeeds when the
// account exists. Demo trust model, kept as-is.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": body.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	logged, err := h.State.Login(email, body.Password)
	if err != nil {
		applog.Error(c, "auth.login.error", err, nil)
		return fail(c, err)
	}
	if !logged {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	user, _ := h.State.CurrentUser()
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(user)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		return badRequest(c, "invalid email")
	}

	user, err := h.State.Register(name, email, body.Password)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.State.Logout()
	applog.Audit(c, "auth.logout", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := h.State.CurrentUser()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not logged in"})
	}
	return c.JSON(user)
}
