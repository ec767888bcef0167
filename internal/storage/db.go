package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stolasapp/catalog/internal/config"
	"github.com/stolasapp/catalog/internal/storage/db"
)

// DB is a [Store] backed by a SQLite database.
type DB struct {
	db      *sql.DB
	queries *db.Queries
}

// NewDB initializes a DB with the given config and logger.
func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, cfg.DBFilepath)
	if err != nil {
		return nil, err
	}
	return &DB{
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Ping satisfies the [Store] interface.
func (d *DB) Ping(ctx context.Context) error {
	return engineErr(d.db.PingContext(ctx))
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// ListProducts satisfies the [Products] interface.
func (d *DB) ListProducts(ctx context.Context) ([]db.Product, error) {
	products, err := d.queries.ListProducts(ctx)
	return products, engineErr(err)
}

// GetProduct satisfies the [Products] interface.
func (d *DB) GetProduct(ctx context.Context, id int64) (db.Product, error) {
	product, err := d.queries.GetProduct(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return product, ErrNotFound
	}
	return product, engineErr(err)
}

// CreateProduct satisfies the [Products] interface.
func (d *DB) CreateProduct(ctx context.Context, fields db.ProductFields) (db.Product, error) {
	product, err := d.queries.CreateProduct(ctx, fields)
	return product, engineErr(err)
}

// UpdateProduct satisfies the [Products] interface.
func (d *DB) UpdateProduct(ctx context.Context, id int64, fields db.ProductFields) (int64, error) {
	n, err := d.queries.UpdateProduct(ctx, db.UpdateProductParams{
		ID:            id,
		ProductFields: fields,
	})
	return n, engineErr(err)
}

// DeleteProduct satisfies the [Products] interface.
func (d *DB) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	n, err := d.queries.DeleteProduct(ctx, id)
	return n, engineErr(err)
}

// CountProducts satisfies the [Products] interface.
func (d *DB) CountProducts(ctx context.Context) (int64, error) {
	n, err := d.queries.CountProducts(ctx)
	return n, engineErr(err)
}

// engineErr tags a non-nil error from the engine as [ErrInternal].
func engineErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

var _ Store = (*DB)(nil)
