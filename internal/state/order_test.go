package state_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/domain"
	"lumina/internal/state"
)

func TestPlaceOrder_FullFlow(t *testing.T) {
	st := newTestStore(t)
	p8 := mustProduct(t, st, "p8") // stock 5
	require.NoError(t, st.AddToCart(p8))
	require.NoError(t, st.AddToCart(p8))

	subtotal := st.CartTotal()
	shipping, tax, total := domain.CheckoutTotals(subtotal, 0)
	require.Equal(t, domain.PaymentPaid, st.ProcessPayment(domain.MethodCard))

	order, err := st.PlaceOrder(state.OrderDraft{
		CustomerName: "Guest Shopper",
		Email:        "guest@example.com",
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        total,
	})
	require.NoError(t, err)

	require.NotEmpty(t, order.ID)
	require.Equal(t, domain.GuestUserID, order.UserID)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, domain.PaymentPaid, order.PaymentStatus)
	require.Contains(t, order.Timeline, "placed")
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)

	// Stock settled in memory and durably; cart emptied.
	require.Equal(t, 3, mustProduct(t, st, "p8").Stock)
	require.Empty(t, st.Cart())

	got, ok := st.Order(order.ID)
	require.True(t, ok)
	require.Equal(t, order.ID, got.ID)

	emails := messagesOfType(st, domain.NotifyEmail)
	require.Len(t, emails, 1)
	require.Equal(t, "Order Confirmation sent to guest@example.com", emails[0])
}

func TestPlaceOrder_BindsSignedInUser(t *testing.T) {
	st := newTestStore(t)
	ok, err := st.Login("user@lumina.com", "")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, st.AddToCart(mustProduct(t, st, "p1")))
	order, err := st.PlaceOrder(state.OrderDraft{Email: "user@lumina.com"})
	require.NoError(t, err)
	require.Equal(t, "user-1", order.UserID)

	require.Len(t, st.UserOrders("user-1"), 1)
}

func TestUpdateOrderStatus_ShippedEmailFiresOnce(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.AddToCart(mustProduct(t, st, "p1")))
	order, err := st.PlaceOrder(state.OrderDraft{Email: "buyer@example.com"})
	require.NoError(t, err)

	require.NoError(t, st.UpdateOrderStatus(order.ID, domain.StatusShipped))
	require.NoError(t, st.UpdateOrderStatus(order.ID, domain.StatusShipped))

	shippingMails := 0
	for _, msg := range messagesOfType(st, domain.NotifyEmail) {
		if strings.HasPrefix(msg, "Shipping Update") {
			shippingMails++
		}
	}
	require.Equal(t, 1, shippingMails)

	got, ok := st.Order(order.ID)
	require.True(t, ok)
	require.Equal(t, domain.StatusShipped, got.Status)
	require.Contains(t, got.Timeline, "shipped")
	require.Contains(t, got.Timeline, "placed")
}

func TestUpdateOrderStatus_UnknownIDIsNoOp(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.UpdateOrderStatus("missing", domain.StatusShipped))
	require.Empty(t, messagesOfType(st, domain.NotifyEmail))
}

func TestRefundOrder_DistinctFromCancel(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.AddToCart(mustProduct(t, st, "p1")))
	refunded, err := st.PlaceOrder(state.OrderDraft{Email: "a@example.com"})
	require.NoError(t, err)
	require.NoError(t, st.AddToCart(mustProduct(t, st, "p2")))
	cancelled, err := st.PlaceOrder(state.OrderDraft{Email: "b@example.com"})
	require.NoError(t, err)

	require.NoError(t, st.RefundOrder(refunded.ID))
	require.NoError(t, st.UpdateOrderStatus(cancelled.ID, domain.StatusCancelled))

	got, ok := st.Order(refunded.ID)
	require.True(t, ok)
	require.Equal(t, domain.StatusCancelled, got.Status)
	require.Equal(t, domain.PaymentRefunded, got.PaymentStatus)
	require.Equal(t, got.Timeline["cancelled"], got.Timeline["refunded"])

	// A bare cancellation keeps the payment settled.
	got, ok = st.Order(cancelled.ID)
	require.True(t, ok)
	require.Equal(t, domain.StatusCancelled, got.Status)
	require.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	_, refundStamped := got.Timeline["refunded"]
	require.False(t, refundStamped)
}

func TestValidateCoupon(t *testing.T) {
	st := newTestStore(t)

	c, ok := st.ValidateCoupon("WELCOME10", 50)
	require.True(t, ok)
	require.Equal(t, "percent", c.Type)
	require.InDelta(t, 5.0, domain.DiscountAmount(c, 50), 1e-9)

	// Below the floor.
	_, ok = st.ValidateCoupon("SAVE20", 50)
	require.False(t, ok)

	c, ok = st.ValidateCoupon("SAVE20", 150)
	require.True(t, ok)
	require.InDelta(t, 20.0, domain.DiscountAmount(c, 150), 1e-9)

	_, ok = st.ValidateCoupon("NOPE99", 500)
	require.False(t, ok)
}
