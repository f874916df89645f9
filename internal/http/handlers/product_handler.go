package handlers

import (
	"lumina/internal/assist"
	"lumina/internal/domain"
	applog "lumina/internal/log"
	"lumina/internal/state"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	State  *state.Store
	Assist *assist.Client
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.State.Products())
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, ok := h.State.Product(id)
	if !ok {
		return notFound(c)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid product payload")
	}
	if _, ok := validate.Name(p.Name); !ok {
		return badRequest(c, "invalid product name")
	}
	if _, ok := validate.Category(string(p.Category)); !ok {
		return badRequest(c, "invalid category")
	}
	if p.Price < 0 || p.Stock < 0 {
		return badRequest(c, "price and stock must be non-negative")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := h.State.AddProduct(p); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid product payload")
	}
	p.ID = id
	if p.Price < 0 || p.Stock < 0 {
		return badRequest(c, "price and stock must be non-negative")
	}
	if err := h.State.UpdateProduct(p); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": id})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.State.DeleteProduct(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// Review accepts a rating+comment from the signed-in user. The state layer
// treats an unknown product as a silent no-op, matching the store semantics.
func (h *ProductHandler) Review(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	user, ok := h.State.CurrentUser()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}

	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid review payload")
	}
	if !validate.Rating(body.Rating) {
		return badRequest(c, "rating must be between 1 and 5")
	}

	review := domain.Review{
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   body.Rating,
		Comment:  body.Comment,
	}
	if err := h.State.AddReview(id, review); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// Pitch asks the text service for a marketing one-liner; a service failure
// still answers 200 with the fallback copy.
func (h *ProductHandler) Pitch(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, ok := h.State.Product(id)
	if !ok {
		return notFound(c)
	}
	pitch := h.Assist.GenerateProductPitch(c.Context(), p.Name, p.Description)
	return c.JSON(fiber.Map{"pitch": pitch})
}

// Describe drafts catalog copy for the admin product editor.
func (h *ProductHandler) Describe(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Features string `json:"features"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	text := h.Assist.GenerateProductDescription(c.Context(), body.Name, body.Category, body.Features)
	return c.JSON(fiber.Map{"description": text})
}
