package repos

import (
	"log"

	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Seed populates empty collections with the bootstrap catalog. Products and
// coupons seed on an empty-collection check; the two fixture accounts seed on
// an email-existence check since the users collection grows on its own. Every
// insert is ON CONFLICT DO NOTHING, so a racing double-seed never overwrites.
func Seed(db *sqlx.DB) error {
	if err := seedProducts(db); err != nil {
		return err
	}
	if err := seedCoupons(db); err != nil {
		return err
	}
	return seedUsers(db)
}

func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range seedCatalog {
		reviews, err := encodeJSON(p.ReviewsList)
		if err != nil {
			return err
		}
		features, err := encodeJSON(p.Features)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
		  INSERT INTO products(id, name, price, category, description, image, rating, reviews, reviews_json, features_json, stock)
		  VALUES(?,?,?,?,?,?,?,?,?,?,?)
		  ON CONFLICT(id) DO NOTHING
		`, p.ID, p.Name, p.Price, string(p.Category), p.Description, p.Image,
			p.Rating, p.Reviews, reviews, features, p.Stock); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func seedCoupons(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM coupons`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo coupons")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range seedCouponList {
		if _, err := tx.Exec(`
		  INSERT INTO coupons(code, type, value, min_order) VALUES(?,?,?,?)
		  ON CONFLICT(code) DO NOTHING
		`, c.Code, c.Type, c.Value, c.MinOrder); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func seedUsers(db *sqlx.DB) error {
	users := NewUserRepo(db)
	for _, u := range seedAccounts {
		if _, err := users.ByEmail(u.Email); err == nil {
			continue
		}
		addresses, err := encodeJSON(u.Addresses)
		if err != nil {
			return err
		}
		wishlist, err := encodeJSON(u.Wishlist)
		if err != nil {
			return err
		}
		log.Printf("[seed] inserting account %s", u.Email)
		if _, err := db.Exec(`
		  INSERT INTO users(id, name, email, role, avatar, password, addresses_json, wishlist_json)
		  VALUES(?,?,?,?,?,?,?,?)
		  ON CONFLICT DO NOTHING
		`, u.ID, u.Name, u.Email, string(u.Role), u.Avatar, u.Password, addresses, wishlist); err != nil {
			return err
		}
	}
	return nil
}

var seedCouponList = []domain.Coupon{
	{Code: "WELCOME10", Type: "percent", Value: 10, MinOrder: 0},
	{Code: "SAVE20", Type: "fixed", Value: 20, MinOrder: 100},
	{Code: "SUMMER24", Type: "percent", Value: 15, MinOrder: 50},
}

var seedAccounts = []domain.User{
	{
		ID:        "admin-1",
		Name:      "Alex Admin",
		Email:     "admin@lumina.com",
		Password:  "password",
		Role:      domain.RoleAdmin,
		Avatar:    "https://ui-avatars.com/api/?name=Alex+Admin&background=1e1b4b&color=fff",
		Addresses: []domain.Address{},
		Wishlist:  []string{},
	},
	{
		ID:       "user-1",
		Name:     "Demo User",
		Email:    "user@lumina.com",
		Password: "password",
		Role:     domain.RoleUser,
		Avatar:   "https://ui-avatars.com/api/?name=Demo+User&background=4f46e5&color=fff",
		Addresses: []domain.Address{
			{
				ID:        "addr-1",
				Label:     "Home",
				Street:    "123 Main St",
				City:      "Tech City",
				State:     "CA",
				Zip:       "94000",
				Country:   "USA",
				IsDefault: true,
			},
		},
		Wishlist: []string{"p1", "p3"},
	},
}

var seedCatalog = []domain.Product{
	{
		ID:          "p1",
		Name:        "Minimalist Wool Trench",
		Price:       249.99,
		Category:    domain.CategoryClothing,
		Description: "A timeless tailored trench coat crafted from premium merino wool blend. Features a classic double-breasted silhouette.",
		Image:       "https://picsum.photos/id/1059/800/1000",
		Rating:      4.8,
		Reviews:     124,
		Features:    []string{"100% Merino Wool", "Water Resistant", "Sustainable Lining"},
		Stock:       15,
		ReviewsList: []domain.Review{
			{
				ID:       "r1",
				UserID:   "u1",
				UserName: "Alice M.",
				Rating:   5,
				Comment:  "Absolutely stunning quality. Fits perfectly and keeps me warm.",
				Date:     "2023-11-15T10:00:00Z",
			},
			{
				ID:       "r2",
				UserID:   "u2",
				UserName: "John D.",
				Rating:   4,
				Comment:  "Great coat, but the sleeves are slightly long for me.",
				Date:     "2023-12-01T14:30:00Z",
			},
		},
	},
	{
		ID:          "p2",
		Name:        "SonicPro Noise Cancelling Headphones",
		Price:       349.00,
		Category:    domain.CategoryElectronics,
		Description: "Immerse yourself in pure sound with industry-leading noise cancellation and 40-hour battery life.",
		Image:       "https://picsum.photos/id/1/800/800",
		Rating:      4.9,
		Reviews:     850,
		Features:    []string{"Active Noise Cancellation", "40h Battery", "Multipoint Bluetooth"},
		Stock:       45,
		ReviewsList: []domain.Review{
			{
				ID:       "r3",
				UserID:   "u3",
				UserName: "TechGuru",
				Rating:   5,
				Comment:  "Best ANC headphones on the market. Better than the competitors.",
				Date:     "2024-01-10T09:15:00Z",
			},
		},
	},
	{
		ID:          "p3",
		Name:        "Ceramic Artisan Vase",
		Price:       89.50,
		Category:    domain.CategoryHome,
		Description: "Hand-thrown ceramic vase with a matte speckled glaze. Perfect for dried florals or as a standalone statement piece.",
		Image:       "https://picsum.photos/id/106/800/1000",
		Rating:      4.7,
		Reviews:     45,
		Features:    []string{"Handcrafted", "Dishwasher Safe", "Unique Glaze"},
		Stock:       8,
		ReviewsList: []domain.Review{},
	},
	{
		ID:          "p4",
		Name:        "Urban Explorer Backpack",
		Price:       129.99,
		Category:    domain.CategoryAccessories,
		Description: "Designed for the modern commuter. Waterproof materials, dedicated laptop compartment, and ergonomic straps.",
		Image:       "https://picsum.photos/id/103/800/1000",
		Rating:      4.6,
		Reviews:     210,
		Features:    []string{"Waterproof", "16L Capacity", "Anti-theft Pocket"},
		Stock:       2,
		ReviewsList: []domain.Review{},
	},
	{
		ID:          "p5",
		Name:        "Analog Mechanical Keyboard",
		Price:       199.00,
		Category:    domain.CategoryElectronics,
		Description: "Tactile typing experience with hot-swappable switches and aircraft-grade aluminum chassis.",
		Image:       "https://picsum.photos/id/366/800/600",
		Rating:      4.9,
		Reviews:     342,
		Features:    []string{"RGB Backlight", "Hot-swappable", "Aluminum Body"},
		Stock:       0,
		ReviewsList: []domain.Review{},
	},
	{
		ID:          "p6",
		Name:        "Linen Lounge Set",
		Price:       110.00,
		Category:    domain.CategoryClothing,
		Description: "Breathable linen set including oversized shirt and drawstring shorts. Ultimate comfort for home or vacation.",
		Image:       "https://picsum.photos/id/1005/800/1000",
		Rating:      4.5,
		Reviews:     89,
		Features:    []string{"100% Organic Linen", "Relaxed Fit", "Machine Washable"},
		Stock:       30,
		ReviewsList: []domain.Review{},
	},
	{
		ID:          "p7",
		Name:        "Smart Coffee Maker",
		Price:       299.00,
		Category:    domain.CategoryHome,
		Description: "Wifi-enabled precision brewer. Schedule your morning cup from your phone with temperature control.",
		Image:       "https://picsum.photos/id/425/800/800",
		Rating:      4.4,
		Reviews:     156,
		Features:    []string{"App Control", "Precision Temp", "Built-in Grinder"},
		Stock:       12,
		ReviewsList: []domain.Review{},
	},
	{
		ID:          "p8",
		Name:        "Leather Weekend Bag",
		Price:       450.00,
		Category:    domain.CategoryAccessories,
		Description: "Full-grain Italian leather duffel bag. Ages beautifully and fits into overhead compartments.",
		Image:       "https://picsum.photos/id/1012/800/600",
		Rating:      4.9,
		Reviews:     67,
		Features:    []string{"Italian Leather", "Brass Hardware", "5 Year Warranty"},
		Stock:       5,
		ReviewsList: []domain.Review{},
	},
}
