package repos_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"lumina/internal/domain"
	"lumina/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProductRepo_RoundTrip(t *testing.T) {
	db := memdb(t)
	r := repos.NewProductRepo(db)

	p := domain.Product{
		ID:       "gizmo-1",
		Name:     "Gizmo",
		Price:    19.99,
		Category: domain.CategoryElectronics,
		Rating:   4.2,
		Reviews:  1,
		ReviewsList: []domain.Review{
			{ID: "r1", UserID: "u1", UserName: "Ann", Rating: 4, Comment: "fine", Date: "2024-01-01T00:00:00Z"},
		},
		Features: []string{"Small", "Loud"},
		Stock:    7,
	}
	require.NoError(t, r.Put(p))

	got, err := r.Get("gizmo-1")
	require.NoError(t, err)
	require.Equal(t, p, got)

	// upsert overwrites in place
	p.Stock = 3
	p.Name = "Gizmo v2"
	require.NoError(t, r.Put(p))
	got, err = r.Get("gizmo-1")
	require.NoError(t, err)
	require.Equal(t, 3, got.Stock)
	require.Equal(t, "Gizmo v2", got.Name)

	n, err := r.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, r.Delete("gizmo-1"))
	_, err = r.Get("gizmo-1")
	require.ErrorIs(t, err, repos.ErrNotFound)
	require.ErrorIs(t, r.Delete("gizmo-1"), repos.ErrNotFound)
}

func TestUserRepo_EmailUniqueness(t *testing.T) {
	db := memdb(t)
	r := repos.NewUserRepo(db)

	a := domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: domain.RoleUser,
		Addresses: []domain.Address{}, Wishlist: []string{}}
	require.NoError(t, r.Put(a))

	// same id, new email: plain update
	a.Email = "ann2@example.com"
	require.NoError(t, r.Put(a))

	// different id, same email (case-insensitive): conflict
	b := domain.User{ID: "u2", Name: "Imposter", Email: "ANN2@example.com", Role: domain.RoleUser,
		Addresses: []domain.Address{}, Wishlist: []string{}}
	require.ErrorIs(t, r.Put(b), repos.ErrConflict)

	got, err := r.ByEmail("Ann2@Example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)

	_, err = r.ByEmail("nobody@example.com")
	require.ErrorIs(t, err, repos.ErrNotFound)
}

func TestUserRepo_NestedFields(t *testing.T) {
	db := memdb(t)
	r := repos.NewUserRepo(db)

	u := domain.User{
		ID: "u1", Name: "Ann", Email: "ann@example.com", Role: domain.RoleUser,
		Addresses: []domain.Address{{ID: "a1", Label: "Home", Street: "1 Way", City: "Town",
			State: "CA", Zip: "94000", Country: "USA", IsDefault: true}},
		Wishlist: []string{"p1", "p3"},
	}
	require.NoError(t, r.Put(u))
	got, err := r.Get("u1")
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestOrderRepo_RoundTripAndOrdering(t *testing.T) {
	db := memdb(t)
	r := repos.NewOrderRepo(db)

	older := domain.Order{
		ID: "o1", UserID: "u1", Date: "2024-01-01T10:00:00Z",
		Status: domain.StatusDelivered, PaymentStatus: domain.PaymentPaid,
		Timeline: map[string]string{"placed": "2024-01-01T10:00:00Z"},
		Items: []domain.CartItem{{
			Product:  domain.Product{ID: "p1", Name: "Thing", Price: 10, Category: domain.CategoryHome, Features: []string{}, ReviewsList: []domain.Review{}},
			Quantity: 2,
		}},
		Subtotal: 20, Total: 36.6, Tax: 1.6, ShippingCost: 15,
	}
	newer := domain.Order{
		ID: "o2", UserID: "u2", Date: "2024-02-01T10:00:00Z",
		Status: domain.StatusPending, PaymentStatus: domain.PaymentPaid,
		Timeline: map[string]string{"placed": "2024-02-01T10:00:00Z"},
	}
	require.NoError(t, r.Put(older))
	require.NoError(t, r.Put(newer))

	all, err := r.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "o2", all[0].ID) // newest first

	got, err := r.Get("o1")
	require.NoError(t, err)
	require.Equal(t, older.Items, got.Items)
	require.Equal(t, older.Timeline, got.Timeline)

	mine, err := r.ListByUser("u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "o1", mine[0].ID)

	_, err = r.Get("missing")
	require.ErrorIs(t, err, repos.ErrNotFound)
}

func TestSeed_Idempotent(t *testing.T) {
	db := memdb(t)
	require.NoError(t, repos.Seed(db))
	require.NoError(t, repos.Seed(db))

	products := repos.NewProductRepo(db)
	n, err := products.Count()
	require.NoError(t, err)
	require.Equal(t, 8, n)

	coupons := repos.NewCouponRepo(db)
	n, err = coupons.Count()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	users := repos.NewUserRepo(db)
	all, err := users.All()
	require.NoError(t, err)
	require.Len(t, all, 2)

	// A later edit to a seeded account survives re-seeding: accounts are
	// probed by email, never overwritten.
	demo, err := users.ByEmail("user@lumina.com")
	require.NoError(t, err)
	demo.Name = "Renamed"
	require.NoError(t, users.Put(demo))
	require.NoError(t, repos.Seed(db))
	demo, err = users.ByEmail("user@lumina.com")
	require.NoError(t, err)
	require.Equal(t, "Renamed", demo.Name)
}

func TestSeed_FixtureShape(t *testing.T) {
	db := memdb(t)
	require.NoError(t, repos.Seed(db))

	products := repos.NewProductRepo(db)
	p1, err := products.Get("p1")
	require.NoError(t, err)
	require.Len(t, p1.ReviewsList, 2)
	require.Equal(t, domain.CategoryClothing, p1.Category)

	coupons := repos.NewCouponRepo(db)
	c, err := coupons.Get("SAVE20")
	require.NoError(t, err)
	require.Equal(t, "fixed", c.Type)
	require.Equal(t, 100.0, c.MinOrder)

	users := repos.NewUserRepo(db)
	demo, err := users.ByEmail("user@lumina.com")
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p3"}, demo.Wishlist)
	require.Len(t, demo.Addresses, 1)
	require.True(t, demo.Addresses[0].IsDefault)
}
