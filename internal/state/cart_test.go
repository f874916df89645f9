package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/domain"
	"lumina/internal/state"
)

func TestAddToCart_RefusesBeyondStock(t *testing.T) {
	st := newTestStore(t)
	p4 := mustProduct(t, st, "p4") // stock 2

	require.NoError(t, st.AddToCart(p4))
	require.NoError(t, st.AddToCart(p4))
	require.True(t, st.IsCartOpen())

	err := st.AddToCart(p4)
	require.ErrorIs(t, err, state.ErrInsufficientStock)

	cart := st.Cart()
	require.Len(t, cart, 1)
	require.Equal(t, 2, cart[0].Quantity)

	errs := messagesOfType(st, domain.NotifyError)
	require.Len(t, errs, 1)
	require.Equal(t, "Only 2 items available in stock!", errs[0])
}

func TestAddToCart_ZeroStockNeverEnters(t *testing.T) {
	st := newTestStore(t)
	p5 := mustProduct(t, st, "p5") // stock 0

	require.ErrorIs(t, st.AddToCart(p5), state.ErrInsufficientStock)
	require.Empty(t, st.Cart())
}

func TestUpdateQuantity_Bounds(t *testing.T) {
	st := newTestStore(t)
	p4 := mustProduct(t, st, "p4") // stock 2
	require.NoError(t, st.AddToCart(p4))

	// Over stock: refused, quantity untouched.
	require.ErrorIs(t, st.UpdateQuantity("p4", 5), state.ErrInsufficientStock)
	require.Equal(t, 1, st.Cart()[0].Quantity)

	// Within stock.
	require.NoError(t, st.UpdateQuantity("p4", 1))
	require.Equal(t, 2, st.Cart()[0].Quantity)

	// Below one: clamps to one, the line stays.
	require.NoError(t, st.UpdateQuantity("p4", -5))
	require.Equal(t, 1, st.Cart()[0].Quantity)

	// Unknown product id is a no-op.
	require.NoError(t, st.UpdateQuantity("nope", 1))
	require.Len(t, st.Cart(), 1)
}

func TestRemoveAndClearCart(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.AddToCart(mustProduct(t, st, "p1")))
	require.NoError(t, st.AddToCart(mustProduct(t, st, "p2")))
	require.Equal(t, 2, st.CartCount())

	st.RemoveFromCart("p1")
	cart := st.Cart()
	require.Len(t, cart, 1)
	require.Equal(t, "p2", cart[0].ID)

	st.ClearCart()
	require.Empty(t, st.Cart())
	require.Zero(t, st.CartTotal())
}

func TestCartTotals(t *testing.T) {
	st := newTestStore(t)
	p1 := mustProduct(t, st, "p1") // 249.99
	p3 := mustProduct(t, st, "p3") // 89.50
	require.NoError(t, st.AddToCart(p1))
	require.NoError(t, st.AddToCart(p1))
	require.NoError(t, st.AddToCart(p3))

	require.Equal(t, 3, st.CartCount())
	require.InDelta(t, 2*249.99+89.50, st.CartTotal(), 1e-9)
}
