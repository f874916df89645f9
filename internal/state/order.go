package state

import (
	"fmt"
	"log"
	"time"

	"lumina/internal/domain"

	"github.com/google/uuid"
)

// ValidateCoupon checks eligibility only: the code must exist and the order
// total must clear its floor. Discount arithmetic belongs to
// domain.DiscountAmount so every caller computes it the same way.
func (s *Store) ValidateCoupon(code string, orderTotal float64) (domain.Coupon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code != code {
			continue
		}
		if orderTotal < c.MinOrder {
			return domain.Coupon{}, false
		}
		return c, true
	}
	return domain.Coupon{}, false
}

// OrderDraft is what checkout hands over; the orchestrator owns id, date,
// user binding, status, payment status and timeline.
type OrderDraft struct {
	CustomerName      string
	Email             string
	Items             []domain.CartItem // snapshot; defaults to the current cart
	Subtotal          float64
	Discount          float64
	Tax               float64
	ShippingCost      float64
	Total             float64
	ShippingAddress   string
	BillingAddress    string
	PaymentMethod     string
	PaymentMethodType domain.PaymentMethod
}

// PlaceOrder creates the order and settles inventory. The order is persisted
// before any stock write; a crash after the order lands but before all stock
// decrements persist leaves an order-over-inventory skew on restart, which is
// the accepted risk of the store's single-record write guarantee.
func (s *Store) PlaceOrder(draft OrderDraft) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	userID := domain.GuestUserID
	if s.user != nil {
		userID = s.user.ID
	}

	items := draft.Items
	if len(items) == 0 {
		items = s.cart
	}

	order := domain.Order{
		ID:                uuid.NewString(),
		UserID:            userID,
		CustomerName:      draft.CustomerName,
		Email:             draft.Email,
		Items:             snapshotItems(items),
		Subtotal:          draft.Subtotal,
		Discount:          draft.Discount,
		Tax:               draft.Tax,
		ShippingCost:      draft.ShippingCost,
		Total:             draft.Total,
		Date:              now,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentPaid, // gateway simulation has already succeeded by now
		Timeline:          map[string]string{"placed": now},
		ShippingAddress:   draft.ShippingAddress,
		BillingAddress:    draft.BillingAddress,
		PaymentMethod:     draft.PaymentMethod,
		PaymentMethodType: draft.PaymentMethodType,
	}

	if err := s.ordRepo.Put(order); err != nil {
		s.pushNotification(domain.NotifyError, "Failed to place order")
		return domain.Order{}, err
	}
	s.orders = append([]domain.Order{order}, s.orders...)

	// Decrement stock for every cart line, floored at zero; persist only
	// the products that actually changed.
	for _, line := range s.cart {
		for i := range s.products {
			if s.products[i].ID != line.ID {
				continue
			}
			newStock := s.products[i].Stock - line.Quantity
			if newStock < 0 {
				newStock = 0
			}
			if newStock != s.products[i].Stock {
				s.products[i].Stock = newStock
				if err := s.prodRepo.Put(s.products[i]); err != nil {
					log.Printf("[state] stock write failed for %s: %v", line.ID, err)
				}
			}
			break
		}
	}

	s.cart = nil
	s.persistCart()
	s.pushNotification(domain.NotifyEmail, fmt.Sprintf("Order Confirmation sent to %s", order.Email))
	return order, nil
}

func snapshotItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Features = append([]string(nil), it.Features...)
		out[i].ReviewsList = append([]domain.Review(nil), it.ReviewsList...)
	}
	return out
}

// UpdateOrderStatus sets the status and stamps the timeline the first time a
// status is reached. Entering shipped from anywhere else fires the shipping
// email exactly once; the generic status notification always fires. Unknown
// ids are a silent no-op.
func (s *Store) UpdateOrderStatus(orderID string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	order := s.orders[idx]
	prevStatus := order.Status

	order.Timeline = copyTimeline(order.Timeline)
	if _, ok := order.Timeline[string(status)]; !ok {
		order.Timeline[string(status)] = now
	}
	order.Status = status

	if status == domain.StatusShipped && prevStatus != domain.StatusShipped {
		s.pushNotification(domain.NotifyEmail, fmt.Sprintf("Shipping Update sent to %s", order.Email))
	}

	if err := s.ordRepo.Put(order); err != nil {
		s.pushNotification(domain.NotifyError, "Failed to update order")
		return err
	}
	s.orders[idx] = order
	s.pushNotification(domain.NotifySuccess, fmt.Sprintf("Order #%s marked as %s", orderID, status))
	return nil
}

// RefundOrder is the financial cancellation: status cancelled, payment
// refunded, both timeline stamps equal. A bare status change to cancelled
// never touches payment status; the two paths stay distinct.
func (s *Store) RefundOrder(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	order := s.orders[idx]
	order.Status = domain.StatusCancelled
	order.PaymentStatus = domain.PaymentRefunded
	order.Timeline = copyTimeline(order.Timeline)
	order.Timeline[string(domain.StatusCancelled)] = now
	order.Timeline["refunded"] = now

	if err := s.ordRepo.Put(order); err != nil {
		s.pushNotification(domain.NotifyError, "Failed to refund order")
		return err
	}
	s.orders[idx] = order

	s.pushNotification(domain.NotifyEmail, fmt.Sprintf("Refund Confirmation sent to %s", order.Email))
	s.pushNotification(domain.NotifySuccess, fmt.Sprintf("Order #%s refunded", orderID))
	return nil
}

func copyTimeline(t map[string]string) map[string]string {
	out := make(map[string]string, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	return out
}
