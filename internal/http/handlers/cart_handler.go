package handlers

import (
	"lumina/internal/state"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	State *state.Store
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.State.Cart(),
		"total": h.State.CartTotal(),
		"count": h.State.CartCount(),
		"open":  h.State.IsCartOpen(),
	})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
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
	p, ok := h.State.Product(id)
	if !ok {
		return notFound(c)
	}
	if err := h.State.AddToCart(p); err != nil {
		return fail(c, err)
	}
	return h.View(c)
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
		Delta     int    `json:"delta"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	id, ok := validate.ID(body.ProductID)
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.State.UpdateQuantity(id, body.Delta); err != nil {
		return fail(c, err)
	}
	return h.View(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	h.State.RemoveFromCart(id)
	return h.View(c)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.State.ClearCart()
	return h.View(c)
}

func (h *CartHandler) SetOpen(c *fiber.Ctx) error {
	var body struct {
		Open bool `json:"open"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	h.State.SetCartOpen(body.Open)
	return c.SendStatus(fiber.StatusNoContent)
}
