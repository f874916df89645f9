package domain

// Derived values are never stored; every consumer computes them through
// these helpers so they all agree.

const (
	taxRate           = 0.08
	flatShipping      = 15.0
	freeShippingAbove = 150.0
)

func CartTotal(items []CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func CartCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// DiscountAmount computes what a validated coupon is worth against a base
// amount. Percent coupons compute off the base; fixed coupons are flat.
func DiscountAmount(c Coupon, base float64) float64 {
	if c.Type == "percent" {
		return base * c.Value / 100
	}
	return c.Value
}

func ShippingCost(subtotalAfterDiscount float64) float64 {
	if subtotalAfterDiscount > freeShippingAbove {
		return 0
	}
	return flatShipping
}

func Tax(subtotalAfterDiscount float64) float64 {
	return subtotalAfterDiscount * taxRate
}

// CheckoutTotals folds a cart subtotal and discount into the shipped,
// taxed grand total.
func CheckoutTotals(subtotal, discount float64) (shipping, tax, total float64) {
	after := subtotal - discount
	if after < 0 {
		after = 0
	}
	shipping = ShippingCost(after)
	tax = Tax(after)
	total = after + shipping + tax
	return shipping, tax, total
}
