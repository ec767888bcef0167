// Package devseed fills an empty store with generated products for local
// development.
package devseed

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/stolasapp/catalog/internal/storage"
	"github.com/stolasapp/catalog/internal/storage/db"
)

// EnvSeed names the environment variable holding a fixed generator seed.
const EnvSeed = "CATALOG_DEV_SEED"

// Generation constants.
const (
	minProducts      = 8
	maxExtraProducts = 8 // 8-15 products total
	minPrice         = 0.5
	maxPrice         = 500
)

// Seed returns the seed from the CATALOG_DEV_SEED environment variable, or a
// random value if not set.
func Seed() uint64 {
	if env := os.Getenv(EnvSeed); env != "" {
		if seed, err := strconv.ParseUint(env, 10, 64); err == nil {
			return seed
		}
	}
	return rand.Uint64() //nolint:gosec // intentionally weak random for demo data
}

// Products generates a reproducible set of products for the given seed.
func Products(seed uint64) []db.ProductFields {
	faker := gofakeit.New(seed)
	out := make([]db.ProductFields, minProducts+faker.IntN(maxExtraProducts))
	for i := range out {
		out[i] = Product(faker)
	}
	return out
}

// Product generates a single product with every field populated.
func Product(faker *gofakeit.Faker) db.ProductFields {
	return db.ProductFields{
		Name:        faker.ProductName(),
		Description: faker.ProductDescription(),
		Price:       math.Round(faker.Price(minPrice, maxPrice)*100) / 100, //nolint:mnd // cents
		ImageURL:    fmt.Sprintf("https://%s/images/%s.png", faker.DomainName(), faker.UUID()),
	}
}

// Populate inserts generated products if the store is empty, returning the
// number of products created.
func Populate(ctx context.Context, logger *slog.Logger, store storage.Products, seed uint64) (int, error) {
	count, err := store.CountProducts(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.DebugContext(ctx, "store not empty, skipping dev seed", slog.Int64("count", count))
		return 0, nil
	}

	products := Products(seed)
	for _, fields := range products {
		if _, err = store.CreateProduct(ctx, fields); err != nil {
			return 0, fmt.Errorf("failed to seed product %q: %w", fields.Name, err)
		}
	}
	logger.InfoContext(ctx, "seeded dev products",
		slog.Int("count", len(products)),
		slog.Uint64("seed", seed),
	)
	return len(products), nil
}
