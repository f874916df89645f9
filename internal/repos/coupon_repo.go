package repos

import (
	"database/sql"
	"errors"

	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

type couponRow struct {
	Code     string  `db:"code"`
	Type     string  `db:"type"`
	Value    float64 `db:"value"`
	MinOrder float64 `db:"min_order"`
}

func (r *CouponRepo) All() ([]domain.Coupon, error) {
	var rows []couponRow
	if err := r.db.Select(&rows, `SELECT code, type, value, min_order FROM coupons ORDER BY code`); err != nil {
		return nil, err
	}
	out := make([]domain.Coupon, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Coupon{Code: row.Code, Type: row.Type, Value: row.Value, MinOrder: row.MinOrder})
	}
	return out, nil
}

func (r *CouponRepo) Get(code string) (domain.Coupon, error) {
	var row couponRow
	err := r.db.Get(&row, `SELECT code, type, value, min_order FROM coupons WHERE code = ?`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coupon{}, ErrNotFound
	}
	if err != nil {
		return domain.Coupon{}, err
	}
	return domain.Coupon{Code: row.Code, Type: row.Type, Value: row.Value, MinOrder: row.MinOrder}, nil
}

func (r *CouponRepo) Put(c domain.Coupon) error {
	_, err := r.db.Exec(`
	  INSERT INTO coupons(code, type, value, min_order) VALUES(?,?,?,?)
	  ON CONFLICT(code) DO UPDATE SET
	    type = excluded.type, value = excluded.value, min_order = excluded.min_order
	`, c.Code, c.Type, c.Value, c.MinOrder)
	return err
}

func (r *CouponRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM coupons`)
	return n, err
}
