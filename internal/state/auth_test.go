package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/domain"
	"lumina/internal/repos"
	"lumina/internal/state"
)

func TestLogin_MatchAndMiss(t *testing.T) {
	st := newTestStore(t)

	ok, err := st.Login("user@lumina.com", "password")
	require.NoError(t, err)
	require.True(t, ok)
	u, signedIn := st.CurrentUser()
	require.True(t, signedIn)
	require.Equal(t, "Demo User", u.Name)

	st.Logout()
	_, signedIn = st.CurrentUser()
	require.False(t, signedIn)

	ok, err = st.Login("user@lumina.com", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
	_, signedIn = st.CurrentUser()
	require.False(t, signedIn)
}

// An empty password signs in any existing account. Demo trust model, on
// purpose.
func TestLogin_EmptyPasswordBypass(t *testing.T) {
	st := newTestStore(t)

	ok, err := st.Login("admin@lumina.com", "")
	require.NoError(t, err)
	require.True(t, ok)
	u, _ := st.CurrentUser()
	require.Equal(t, domain.RoleAdmin, u.Role)
}

func TestRegister_SignsInAndPersists(t *testing.T) {
	st := newTestStore(t)

	u, err := st.Register("New Person", "new@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, u.Role)
	require.NotEmpty(t, u.Avatar)

	current, ok := st.CurrentUser()
	require.True(t, ok)
	require.Equal(t, u.ID, current.ID)
	require.Len(t, st.Users(), 3)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Register("Taken", "user@lumina.com", "x")
	require.ErrorIs(t, err, repos.ErrConflict)
	require.Len(t, st.Users(), 2)

	errs := messagesOfType(st, domain.NotifyError)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "user@lumina.com")
}

func TestDeleteUser_SelfDeleteLogsOut(t *testing.T) {
	st := newTestStore(t)
	ok, err := st.Login("user@lumina.com", "password")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, st.DeleteUser("user-1"))
	_, signedIn := st.CurrentUser()
	require.False(t, signedIn)
	require.Len(t, st.Users(), 1)
}

func TestToggleWishlist(t *testing.T) {
	st := newTestStore(t)

	// Signed out: refused.
	require.ErrorIs(t, st.ToggleWishlist("p2"), state.ErrNotAuthenticated)

	ok, err := st.Login("user@lumina.com", "password")
	require.NoError(t, err)
	require.True(t, ok)

	// Seeded wishlist holds p1 and p3.
	require.True(t, st.IsInWishlist("p1"))
	require.False(t, st.IsInWishlist("p2"))

	require.NoError(t, st.ToggleWishlist("p2"))
	require.True(t, st.IsInWishlist("p2"))
	require.NoError(t, st.ToggleWishlist("p1"))
	require.False(t, st.IsInWishlist("p1"))

	fresh, ok := st.CurrentUser()
	require.True(t, ok)
	require.Equal(t, []string{"p3", "p2"}, fresh.Wishlist)
}

func TestAddresses(t *testing.T) {
	st := newTestStore(t)
	ok, err := st.Login("user@lumina.com", "password")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, st.AddAddress(domain.Address{
		Label: "Office", Street: "2 Work St", City: "Metro",
		State: "NY", Zip: "10001", Country: "USA",
	}))
	u, _ := st.CurrentUser()
	require.Len(t, u.Addresses, 2)
	added := u.Addresses[1]
	require.NotEmpty(t, added.ID)

	require.NoError(t, st.RemoveAddress(added.ID))
	u, _ = st.CurrentUser()
	require.Len(t, u.Addresses, 1)
	require.Equal(t, "addr-1", u.Addresses[0].ID)
}
