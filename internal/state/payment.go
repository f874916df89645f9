package state

import (
	"time"

	"lumina/internal/domain"
)

// ProcessPayment is the visual gateway simulation: a fixed-duration delay
// that always succeeds. It deliberately runs without the state lock; nothing
// observable changes until PlaceOrder.
func (s *Store) ProcessPayment(method domain.PaymentMethod) domain.PaymentStatus {
	time.Sleep(s.paymentDelay)
	return domain.PaymentPaid
}
