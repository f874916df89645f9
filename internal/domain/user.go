package domain

type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"` // e.g. "Home", "Work"
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Password  string    `json:"password,omitempty"` // plaintext, mock auth only
	Addresses []Address `json:"addresses"`
	Wishlist  []string  `json:"wishlist"` // product ids
}

// DefaultAddress picks the first address flagged as default, or the first
// address at all. Nothing stops a user from flagging several; first wins.
func DefaultAddress(addrs []Address) (Address, bool) {
	for _, a := range addrs {
		if a.IsDefault {
			return a, true
		}
	}
	if len(addrs) > 0 {
		return addrs[0], true
	}
	return Address{}, false
}

// InWishlist reports membership of a product id in a wishlist.
func InWishlist(wishlist []string, productID string) bool {
	for _, id := range wishlist {
		if id == productID {
			return true
		}
	}
	return false
}
