package handlers

import (
	"lumina/internal/domain"
	applog "lumina/internal/log"
	"lumina/internal/state"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	State *state.Store
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.State.Users())
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var u domain.User
	if err := c.BodyParser(&u); err != nil {
		return badRequest(c, "invalid user payload")
	}
	if _, ok := validate.Email(u.Email); !ok {
		return badRequest(c, "invalid email")
	}
	if u.ID == "" {
		u.ID = "user-" + uuid.NewString()
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if err := h.State.AddUser(u); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.create", map[string]any{"id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var u domain.User
	if err := c.BodyParser(&u); err != nil {
		return badRequest(c, "invalid user payload")
	}
	u.ID = id
	if err := h.State.UpdateUser(u); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.update", map[string]any{"id": id})
	return c.JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid user id")
	}
	// Deleting yourself logs you out; the admin panel blocks that client-side,
	// the state layer handles it regardless.
	if err := h.State.DeleteUser(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Wishlist ----------

func (h *UserHandler) Wishlist(c *fiber.Ctx) error {
	user, ok := h.State.CurrentUser()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	var out []domain.Product
	for _, id := range user.Wishlist {
		if p, ok := h.State.Product(id); ok {
			out = append(out, p)
		}
	}
	return c.JSON(out)
}

func (h *UserHandler) ToggleWishlist(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	id, ok := validate.ID(body.ProductID)
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.State.ToggleWishlist(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"inWishlist": h.State.IsInWishlist(id)})
}

// ---------- Addresses ----------

func (h *UserHandler) AddAddress(c *fiber.Ctx) error {
	var a domain.Address
	if err := c.BodyParser(&a); err != nil {
		return badRequest(c, "invalid address payload")
	}
	if err := h.State.AddAddress(a); err != nil {
		return fail(c, err)
	}
	user, _ := h.State.CurrentUser()
	return c.JSON(user.Addresses)
}

func (h *UserHandler) RemoveAddress(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid address id")
	}
	if err := h.State.RemoveAddress(id); err != nil {
		return fail(c, err)
	}
	user, _ := h.State.CurrentUser()
	return c.JSON(user.Addresses)
}
