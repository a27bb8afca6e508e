package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
)

const (
	listProductsSQL = `SELECT id, name, base_price, discount_pct, final_price, stock, default_image
		FROM products ORDER BY id`

	getProductByIDSQL = `SELECT id, name, base_price, discount_pct, final_price, stock, default_image
		FROM products WHERE id = $1`

	getProductsByIDsSQL = `SELECT id, name, base_price, discount_pct, final_price, stock, default_image
		FROM products WHERE id = ANY($1)`

	getVariantsByProductIDsSQL = `SELECT product_id, sku, color_code, color_name, size, stock, price, price_adjustment, images
		FROM product_variants WHERE product_id = ANY($1) ORDER BY product_id, sku`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
// Variants are fetched in a second query and attached to their products, so a
// catalog read is always two round trips regardless of product count.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products with their variants, ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, err
	}
	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product with its variants.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	products := []catalog.Product{p}
	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// GetByIDs returns products matching any of the given IDs, with variants.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting products by ids: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, err
	}
	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) attachVariants(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, getVariantsByProductIDsSQL, ids)
	if err != nil {
		return fmt.Errorf("getting variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID string
			v         catalog.Variant
		)
		if err := rows.Scan(
			&productID, &v.SKU, &v.ColorCode, &v.ColorName, &v.Size,
			&v.Stock, &v.Price, &v.PriceAdjustment, &v.Images,
		); err != nil {
			return fmt.Errorf("scanning variant: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	return rows.Err()
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p          catalog.Product
		basePrice  decimal.Decimal
		finalPrice *decimal.Decimal
	)
	err := row.Scan(
		&p.ID, &p.Name, &basePrice, &p.DiscountPct, &finalPrice,
		&p.Stock, &p.DefaultImage,
	)
	p.BasePrice = basePrice
	p.FinalPrice = finalPrice
	return p, err
}
