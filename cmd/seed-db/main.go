// Command seed-db loads the catalog and store coupons into the database from
// JSON seed files. It is idempotent: products, variants, and coupons are
// upserted by their natural keys.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/repository"
)

const (
	upsertProductSQL = `INSERT INTO products (id, name, base_price, discount_pct, final_price, stock, default_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			base_price = EXCLUDED.base_price,
			discount_pct = EXCLUDED.discount_pct,
			final_price = EXCLUDED.final_price,
			stock = EXCLUDED.stock,
			default_image = EXCLUDED.default_image`

	upsertVariantSQL = `INSERT INTO product_variants (sku, product_id, color_code, color_name, size, stock, price, price_adjustment, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sku) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			color_code = EXCLUDED.color_code,
			color_name = EXCLUDED.color_name,
			size = EXCLUDED.size,
			stock = EXCLUDED.stock,
			price = EXCLUDED.price,
			price_adjustment = EXCLUDED.price_adjustment,
			images = EXCLUDED.images`

	upsertCouponSQL = `INSERT INTO coupons (code, discount_type, value, description, valid_from, valid_until, max_uses, uses, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, TRUE)
		ON CONFLICT (code) DO UPDATE SET
			discount_type = EXCLUDED.discount_type,
			value = EXCLUDED.value,
			description = EXCLUDED.description,
			valid_from = EXCLUDED.valid_from,
			valid_until = EXCLUDED.valid_until,
			max_uses = EXCLUDED.max_uses,
			active = TRUE`
)

type variantJSON struct {
	SKU             string           `json:"sku"`
	ColorCode       string           `json:"color_code"`
	ColorName       string           `json:"color_name"`
	Size            string           `json:"size"`
	Stock           int              `json:"stock"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	PriceAdjustment decimal.Decimal  `json:"price_adjustment"`
	Images          []string         `json:"images,omitempty"`
}

type productJSON struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	BasePrice    decimal.Decimal  `json:"base_price"`
	DiscountPct  int              `json:"discount_pct"`
	FinalPrice   *decimal.Decimal `json:"final_price,omitempty"`
	Stock        int              `json:"stock"`
	DefaultImage string           `json:"default_image"`
	Variants     []variantJSON    `json:"variants,omitempty"`
}

type couponJSON struct {
	Code         string          `json:"code"`
	DiscountType string          `json:"discount_type"`
	Value        decimal.Decimal `json:"value"`
	Description  string          `json:"description"`
	ValidFrom    *string         `json:"valid_from,omitempty"`
	ValidUntil   *string         `json:"valid_until,omitempty"`
	MaxUses      int             `json:"max_uses"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
		couponsFile  string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.StringVar(&couponsFile, "coupons-file", "db/seed/coupons.json", "path to coupons JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, couponsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, couponsFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, pool, productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if err := seedCoupons(ctx, pool, couponsFile); err != nil {
		return errors.Wrap(err, "seed coupons")
	}

	return nil
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, productsFile string) error {
	slog.Info("reading products file", slog.String("path", productsFile))

	data, err := os.ReadFile(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var products []productJSON
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	for _, p := range products {
		if _, err := pool.Exec(ctx, upsertProductSQL,
			p.ID, p.Name, p.BasePrice, p.DiscountPct, p.FinalPrice, p.Stock, p.DefaultImage,
		); err != nil {
			return errors.Wrapf(err, "upsert product %s", p.ID)
		}

		for _, v := range p.Variants {
			if _, err := pool.Exec(ctx, upsertVariantSQL,
				v.SKU, p.ID, v.ColorCode, v.ColorName, v.Size,
				v.Stock, v.Price, v.PriceAdjustment, v.Images,
			); err != nil {
				return errors.Wrapf(err, "upsert variant %s of product %s", v.SKU, p.ID)
			}
		}

		slog.Info("upserted product",
			slog.String("id", p.ID),
			slog.String("name", p.Name),
			slog.Int("variants", len(p.Variants)),
		)
	}

	return nil
}

func seedCoupons(ctx context.Context, pool *pgxpool.Pool, couponsFile string) error {
	slog.Info("reading coupons file", slog.String("path", couponsFile))

	data, err := os.ReadFile(couponsFile)
	if err != nil {
		return errors.Wrap(err, "read coupons file")
	}

	var coupons []couponJSON
	if err := json.Unmarshal(data, &coupons); err != nil {
		return errors.Wrap(err, "parse coupons JSON")
	}

	slog.Info("upserting coupons", slog.Int("count", len(coupons)))

	for _, c := range coupons {
		if _, err := pool.Exec(ctx, upsertCouponSQL,
			c.Code, c.DiscountType, c.Value, c.Description,
			c.ValidFrom, c.ValidUntil, c.MaxUses,
		); err != nil {
			return errors.Wrapf(err, "upsert coupon %s", c.Code)
		}

		slog.Info("upserted coupon", slog.String("code", c.Code), slog.String("description", c.Description))
	}

	return nil
}
