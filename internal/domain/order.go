package domain

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// TerminalStatus reports whether an order can still move forward.
func TerminalStatus(s OrderStatus) bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodEsewa  PaymentMethod = "esewa"
	MethodKhalti PaymentMethod = "khalti"
	MethodPaypal PaymentMethod = "paypal"
)

// CartItem is a product snapshot plus a quantity. Order items are value
// copies of these, frozen at purchase time.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// GuestUserID marks orders placed with nobody logged in.
const GuestUserID = "guest"

type Order struct {
	ID                string            `json:"id"`
	UserID            string            `json:"userId"`
	CustomerName      string            `json:"customerName"`
	Email             string            `json:"email"`
	Items             []CartItem        `json:"items"`
	Subtotal          float64           `json:"subtotal"`
	Discount          float64           `json:"discount"`
	Tax               float64           `json:"tax"`
	ShippingCost      float64           `json:"shippingCost"`
	Total             float64           `json:"total"`
	Date              string            `json:"date"` // RFC3339
	Status            OrderStatus       `json:"status"`
	Timeline          map[string]string `json:"timeline"` // status name -> RFC3339 first reached
	ShippingAddress   string            `json:"shippingAddress"`
	BillingAddress    string            `json:"billingAddress"`
	PaymentMethod     string            `json:"paymentMethod"` // display string, e.g. "Card ending in 4242"
	PaymentMethodType PaymentMethod     `json:"paymentMethodType"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
}

type Coupon struct {
	Code     string  `json:"code"`
	Type     string  `json:"type"` // percent | fixed
	Value    float64 `json:"value"`
	MinOrder float64 `json:"minOrder"`
}
