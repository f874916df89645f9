package repos

import (
	"database/sql"
	"errors"

	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	Category     string  `db:"category"`
	Description  string  `db:"description"`
	Image        string  `db:"image"`
	Rating       float64 `db:"rating"`
	Reviews      int     `db:"reviews"`
	ReviewsJSON  string  `db:"reviews_json"`
	FeaturesJSON string  `db:"features_json"`
	Stock        int     `db:"stock"`
}

func (r productRow) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Category:    domain.Category(r.Category),
		Description: r.Description,
		Image:       r.Image,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		Stock:       r.Stock,
	}
	if err := decodeJSON(r.ReviewsJSON, &p.ReviewsList); err != nil {
		return p, err
	}
	err := decodeJSON(r.FeaturesJSON, &p.Features)
	return p, err
}

func (r *ProductRepo) All() ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `
	  SELECT id, name, price, category, COALESCE(description,'') AS description,
	         COALESCE(image,'') AS image, rating, reviews, reviews_json, features_json, stock
	  FROM products
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var row productRow
	err := r.db.Get(&row, `
	  SELECT id, name, price, category, COALESCE(description,'') AS description,
	         COALESCE(image,'') AS image, rating, reviews, reviews_json, features_json, stock
	  FROM products WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain()
}

// Put upserts a whole product record in one statement.
func (r *ProductRepo) Put(p domain.Product) error {
	reviews, err := encodeJSON(p.ReviewsList)
	if err != nil {
		return err
	}
	features, err := encodeJSON(p.Features)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO products(id, name, price, category, description, image, rating, reviews, reviews_json, features_json, stock)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)
	  ON CONFLICT(id) DO UPDATE SET
	    name = excluded.name, price = excluded.price, category = excluded.category,
	    description = excluded.description, image = excluded.image,
	    rating = excluded.rating, reviews = excluded.reviews,
	    reviews_json = excluded.reviews_json, features_json = excluded.features_json,
	    stock = excluded.stock
	`, p.ID, p.Name, p.Price, string(p.Category), p.Description, p.Image,
		p.Rating, p.Reviews, reviews, features, p.Stock)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}
