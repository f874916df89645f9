package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/domain"
)

func TestAddProduct_Prepends(t *testing.T) {
	st := newTestStore(t)

	p := domain.Product{
		ID: "p9", Name: "Desk Lamp", Price: 39.99,
		Category: domain.CategoryHome, Stock: 10,
		Features: []string{}, ReviewsList: []domain.Review{},
	}
	require.NoError(t, st.AddProduct(p))

	all := st.Products()
	require.Len(t, all, 9)
	require.Equal(t, "p9", all[0].ID)
}

func TestDeleteProduct(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.DeleteProduct("p1"))
	require.Len(t, st.Products(), 7)
	_, ok := st.Product("p1")
	require.False(t, ok)

	// Deleting again is tolerated.
	require.NoError(t, st.DeleteProduct("p1"))
}

func TestAddReview_RecomputesRating(t *testing.T) {
	st := newTestStore(t)

	// p1 seeds with two reviews rated 5 and 4.
	before := mustProduct(t, st, "p1")
	require.Equal(t, 2, before.Reviews)

	require.NoError(t, st.AddReview("p1", domain.Review{
		UserID: "user-1", UserName: "Demo User", Rating: 3, Comment: "okay",
	}))

	after := mustProduct(t, st, "p1")
	require.Equal(t, 3, after.Reviews)
	require.Len(t, after.ReviewsList, 3)
	require.InDelta(t, 4.0, after.Rating, 1e-9) // mean of 5,4,3

	// Newest review leads and gets stamped.
	latest := after.ReviewsList[0]
	require.Equal(t, 3, latest.Rating)
	require.NotEmpty(t, latest.ID)
	require.NotEmpty(t, latest.Date)
}

func TestAddReview_UnknownProductIsNoOp(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.AddReview("ghost", domain.Review{Rating: 5}))
	require.Empty(t, messagesOfType(st, domain.NotifySuccess))
}
