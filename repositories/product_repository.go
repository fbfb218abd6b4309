package repositories

import (
	"context"
	"fmt"

	"dorpon-store/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductStore is the product persistence surface the handlers depend on.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
}

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists the product, assigning a store ID when none is set.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO products (id, seller_id, name, description, category, price, offer_price, images)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		product.ID, product.SellerID, product.Name, product.Description,
		product.Category, product.Price, product.OfferPrice, product.Images).
		Scan(&product.CreatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, seller_id, name, description, category, price, offer_price, images, created_at
		 FROM products WHERE seller_id=$1 ORDER BY created_at DESC`,
		sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, seller_id, name, description, category, price, offer_price, images, created_at
		 FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.OfferPrice, &p.Images, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
