package repositories

import (
	"context"
	"errors"
	"fmt"

	"dorpon-store/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore is the user persistence surface the handlers depend on.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	ReplaceCart(ctx context.Context, id string, cart models.CartItems) error
	AddCartItem(ctx context.Context, id, productID string, delta int) (models.CartItems, error)
	SetCartItem(ctx context.Context, id, productID string, quantity int) (models.CartItems, error)
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		"SELECT id, email, name, image_url, cart_items, created_at, updated_at FROM users WHERE id=$1",
		id).Scan(&u.ID, &u.Email, &u.Name, &u.ImageURL, &u.CartItems, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Upsert creates or refreshes the identity fields keyed by the provider ID.
// A repeated "created" event lands on the conflict branch, which leaves the
// stored cart untouched.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, name, image_url, cart_items)
		 VALUES ($1, $2, $3, $4, '{}'::jsonb)
		 ON CONFLICT (id) DO UPDATE
		 SET email=EXCLUDED.email, name=EXCLUDED.name, image_url=EXCLUDED.image_url, updated_at=now()`,
		user.ID, user.Email, user.Name, user.ImageURL)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ReplaceCart(ctx context.Context, id string, cart models.CartItems) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE users SET cart_items=$2, updated_at=now() WHERE id=$1",
		id, cart)
	if err != nil {
		return fmt.Errorf("replace cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddCartItem merges a quantity delta into the stored cart in a single
// statement, so concurrent writers from different tabs or devices never lose
// each other's increments. A resulting quantity of zero or less drops the key.
func (r *UserRepository) AddCartItem(ctx context.Context, id, productID string, delta int) (models.CartItems, error) {
	var cart models.CartItems
	err := r.db.QueryRow(ctx,
		`UPDATE users SET cart_items = CASE
		   WHEN COALESCE((cart_items->>$2)::int, 0) + $3 <= 0 THEN cart_items - $2::text
		   ELSE jsonb_set(cart_items, ARRAY[$2::text], to_jsonb(COALESCE((cart_items->>$2)::int, 0) + $3))
		 END, updated_at=now()
		 WHERE id=$1
		 RETURNING cart_items`,
		id, productID, delta).Scan(&cart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return cart, nil
}

func (r *UserRepository) SetCartItem(ctx context.Context, id, productID string, quantity int) (models.CartItems, error) {
	var cart models.CartItems
	err := r.db.QueryRow(ctx,
		`UPDATE users SET cart_items = CASE
		   WHEN $3 <= 0 THEN cart_items - $2::text
		   ELSE jsonb_set(cart_items, ARRAY[$2::text], to_jsonb($3::int))
		 END, updated_at=now()
		 WHERE id=$1
		 RETURNING cart_items`,
		id, productID, quantity).Scan(&cart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("set cart item: %w", err)
	}
	return cart, nil
}
