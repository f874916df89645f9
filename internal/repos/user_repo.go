package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

type userRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	Role          string `db:"role"`
	Avatar        string `db:"avatar"`
	Password      string `db:"password"`
	AddressesJSON string `db:"addresses_json"`
	WishlistJSON  string `db:"wishlist_json"`
}

const userCols = `id, name, email, role, COALESCE(avatar,'') AS avatar,
	COALESCE(password,'') AS password, addresses_json, wishlist_json`

func (r userRow) toDomain() (domain.User, error) {
	u := domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      domain.Role(r.Role),
		Avatar:    r.Avatar,
		Password:  r.Password,
		Addresses: []domain.Address{},
		Wishlist:  []string{},
	}
	if err := decodeJSON(r.AddressesJSON, &u.Addresses); err != nil {
		return u, err
	}
	err := decodeJSON(r.WishlistJSON, &u.Wishlist)
	return u, err
}

func (r *UserRepo) All() ([]domain.User, error) {
	var rows []userRow
	if err := r.db.Select(&rows, `SELECT `+userCols+` FROM users`); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepo) Get(id string) (domain.User, error) {
	var row userRow
	err := r.db.Get(&row, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return row.toDomain()
}

// ByEmail is the secondary lookup backing login and seeding.
func (r *UserRepo) ByEmail(email string) (domain.User, error) {
	var row userRow
	err := r.db.Get(&row, `SELECT `+userCols+` FROM users WHERE LOWER(email) = LOWER(?)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return row.toDomain()
}

// Put upserts by id. A different user already holding the same email trips
// the unique index and comes back as ErrConflict.
func (r *UserRepo) Put(u domain.User) error {
	addresses, err := encodeJSON(u.Addresses)
	if err != nil {
		return err
	}
	wishlist, err := encodeJSON(u.Wishlist)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO users(id, name, email, role, avatar, password, addresses_json, wishlist_json)
	  VALUES(?,?,?,?,?,?,?,?)
	  ON CONFLICT(id) DO UPDATE SET
	    name = excluded.name, email = excluded.email, role = excluded.role,
	    avatar = excluded.avatar, password = excluded.password,
	    addresses_json = excluded.addresses_json, wishlist_json = excluded.wishlist_json
	`, u.ID, u.Name, u.Email, string(u.Role), u.Avatar, u.Password, addresses, wishlist)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: email %q already registered", ErrConflict, u.Email)
	}
	return err
}

func (r *UserRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
