package repos

import (
	"database/sql"
	"errors"

	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID                string  `db:"id"`
	UserID            string  `db:"user_id"`
	CustomerName      string  `db:"customer_name"`
	Email             string  `db:"email"`
	ItemsJSON         string  `db:"items_json"`
	Subtotal          float64 `db:"subtotal"`
	Discount          float64 `db:"discount"`
	Tax               float64 `db:"tax"`
	ShippingCost      float64 `db:"shipping_cost"`
	Total             float64 `db:"total"`
	Date              string  `db:"date"`
	Status            string  `db:"status"`
	TimelineJSON      string  `db:"timeline_json"`
	ShippingAddress   string  `db:"shipping_address"`
	BillingAddress    string  `db:"billing_address"`
	PaymentMethod     string  `db:"payment_method"`
	PaymentMethodType string  `db:"payment_method_type"`
	PaymentStatus     string  `db:"payment_status"`
}

const orderCols = `id, user_id, COALESCE(customer_name,'') AS customer_name,
	COALESCE(email,'') AS email, items_json, subtotal, discount, tax,
	shipping_cost, total, date, status, timeline_json,
	COALESCE(shipping_address,'') AS shipping_address,
	COALESCE(billing_address,'') AS billing_address,
	COALESCE(payment_method,'') AS payment_method,
	COALESCE(payment_method_type,'') AS payment_method_type, payment_status`

func (r orderRow) toDomain() (domain.Order, error) {
	o := domain.Order{
		ID:                r.ID,
		UserID:            r.UserID,
		CustomerName:      r.CustomerName,
		Email:             r.Email,
		Subtotal:          r.Subtotal,
		Discount:          r.Discount,
		Tax:               r.Tax,
		ShippingCost:      r.ShippingCost,
		Total:             r.Total,
		Date:              r.Date,
		Status:            domain.OrderStatus(r.Status),
		Timeline:          map[string]string{},
		ShippingAddress:   r.ShippingAddress,
		BillingAddress:    r.BillingAddress,
		PaymentMethod:     r.PaymentMethod,
		PaymentMethodType: domain.PaymentMethod(r.PaymentMethodType),
		PaymentStatus:     domain.PaymentStatus(r.PaymentStatus),
	}
	if err := decodeJSON(r.ItemsJSON, &o.Items); err != nil {
		return o, err
	}
	err := decodeJSON(r.TimelineJSON, &o.Timeline)
	return o, err
}

// All returns orders newest first.
func (r *OrderRepo) All() ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
	  SELECT `+orderCols+` FROM orders ORDER BY datetime(date) DESC, id DESC
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return row.toDomain()
}

// ListByUser serves the user-scoped order history.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
	  SELECT `+orderCols+` FROM orders WHERE user_id = ? ORDER BY datetime(date) DESC, id DESC
	`, userID); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepo) Put(o domain.Order) error {
	items, err := encodeJSON(o.Items)
	if err != nil {
		return err
	}
	timeline, err := encodeJSON(o.Timeline)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO orders(id, user_id, customer_name, email, items_json, subtotal, discount,
	    tax, shipping_cost, total, date, status, timeline_json, shipping_address,
	    billing_address, payment_method, payment_method_type, payment_status)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	  ON CONFLICT(id) DO UPDATE SET
	    user_id = excluded.user_id, customer_name = excluded.customer_name,
	    email = excluded.email, items_json = excluded.items_json,
	    subtotal = excluded.subtotal, discount = excluded.discount,
	    tax = excluded.tax, shipping_cost = excluded.shipping_cost,
	    total = excluded.total, date = excluded.date, status = excluded.status,
	    timeline_json = excluded.timeline_json,
	    shipping_address = excluded.shipping_address,
	    billing_address = excluded.billing_address,
	    payment_method = excluded.payment_method,
	    payment_method_type = excluded.payment_method_type,
	    payment_status = excluded.payment_status
	`, o.ID, o.UserID, o.CustomerName, o.Email, items, o.Subtotal, o.Discount,
		o.Tax, o.ShippingCost, o.Total, o.Date, string(o.Status), timeline,
		o.ShippingAddress, o.BillingAddress, o.PaymentMethod,
		string(o.PaymentMethodType), string(o.PaymentStatus))
	return err
}
