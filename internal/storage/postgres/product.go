package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

const productColumns = `id, name, brand, category, price, regular_price,
	stock, shipping_saver, tag, image_url, rating, review_count`

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the whole catalog ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// GetByID returns a single product by its catalog code. It returns
// product.ErrNotFound when no matching product exists.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	return &p, nil
}

// Upsert inserts or replaces a catalog row. Used by the ingest tool.
func (r *ProductRepository) Upsert(ctx context.Context, p product.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, brand, category, price, regular_price,
			stock, shipping_saver, tag, image_url, rating, review_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			regular_price = EXCLUDED.regular_price,
			stock = EXCLUDED.stock,
			shipping_saver = EXCLUDED.shipping_saver,
			tag = EXCLUDED.tag,
			image_url = EXCLUDED.image_url,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			updated_at = now()`,
		p.ID, p.Name, p.Brand, p.Category, p.Price, p.RegularPrice,
		p.Stock, p.ShippingSaver, nullString(p.Tag), p.ImageURL,
		p.Rating, nullCount(p.ReviewCount),
	)
	if err != nil {
		return errors.Wrapf(err, "upsert product %d", p.ID)
	}
	return nil
}

// scanProduct maps one row using the productColumns order.
func scanProduct(row pgx.Row) (product.Product, error) {
	var (
		p            product.Product
		regularPrice *decimal.Decimal
		rating       *decimal.Decimal
		tag          *string
		reviewCount  *int
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &regularPrice,
		&p.Stock, &p.ShippingSaver, &tag, &p.ImageURL, &rating, &reviewCount,
	)
	if err != nil {
		return product.Product{}, err
	}
	p.RegularPrice = regularPrice
	p.Rating = rating
	if tag != nil {
		p.Tag = *tag
	}
	if reviewCount != nil {
		p.ReviewCount = *reviewCount
	}
	return p, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullCount(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
