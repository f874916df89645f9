package handlers

import (
	"lumina/internal/domain"
	applog "lumina/internal/log"
	"lumina/internal/state"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	State *state.Store
}

// Checkout runs the simulated gateway, then places the order from the
// current cart. Totals are computed server-side from the shared derivation
// helpers so the order record always balances.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var body struct {
		CustomerName      string `json:"customerName"`
		Email             string `json:"email"`
		ShippingAddress   string `json:"shippingAddress"`
		BillingAddress    string `json:"billingAddress"`
		PaymentMethod     string `json:"paymentMethod"`
		PaymentMethodType string `json:"paymentMethodType"`
		CouponCode        string `json:"couponCode"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid checkout payload")
	}
	if _, ok := validate.Name(body.CustomerName); !ok {
		return badRequest(c, "invalid customer name")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		return badRequest(c, "invalid email")
	}
	if len(h.State.Cart()) == 0 {
		return badRequest(c, "cart is empty")
	}

	subtotal := h.State.CartTotal()
	discount := 0.0
	if body.CouponCode != "" {
		if coupon, ok := h.State.ValidateCoupon(body.CouponCode, subtotal); ok {
			discount = domain.DiscountAmount(coupon, subtotal)
		}
	}
	shipping, tax, total := domain.CheckoutTotals(subtotal, discount)

	// Fixed-delay gateway simulation; always succeeds.
	h.State.ProcessPayment(domain.PaymentMethod(body.PaymentMethodType))

	order, err := h.State.PlaceOrder(state.OrderDraft{
		CustomerName:      body.CustomerName,
		Email:             email,
		Subtotal:          subtotal,
		Discount:          discount,
		Tax:               tax,
		ShippingCost:      shipping,
		Total:             total,
		ShippingAddress:   body.ShippingAddress,
		BillingAddress:    body.BillingAddress,
		PaymentMethod:     body.PaymentMethod,
		PaymentMethodType: domain.PaymentMethod(body.PaymentMethodType),
	})
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{"id": order.ID, "total": order.Total})
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.State.Orders())
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	user, ok := h.State.CurrentUser()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	return c.JSON(h.State.UserOrders(user.ID))
}

func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	o, ok := h.State.Order(id)
	if !ok {
		return notFound(c)
	}
	return c.JSON(o)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	status, ok := validate.OrderStatus(body.Status)
	if !ok {
		return badRequest(c, "invalid status")
	}
	if err := h.State.UpdateOrderStatus(id, domain.OrderStatus(status)); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.status", map[string]any{"id": id, "status": status})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) Refund(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	if err := h.State.RefundOrder(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.refund", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateCoupon answers eligibility plus the discount the coupon is worth
// against the supplied total.
func (h *OrderHandler) ValidateCoupon(c *fiber.Ctx) error {
	var body struct {
		Code       string  `json:"code"`
		OrderTotal float64 `json:"orderTotal"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	code, ok := validate.CouponCode(body.Code)
	if !ok {
		return badRequest(c, "invalid coupon code")
	}
	coupon, ok := h.State.ValidateCoupon(code, body.OrderTotal)
	if !ok {
		return c.JSON(fiber.Map{"valid": false})
	}
	return c.JSON(fiber.Map{
		"valid":    true,
		"coupon":   coupon,
		"discount": domain.DiscountAmount(coupon, body.OrderTotal),
	})
}
