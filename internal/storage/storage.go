// Package storage provides the state management for products.
package storage

import (
	"context"

	"github.com/stolasapp/catalog/internal/storage/db"
)

const (
	// ErrNotFound is returned when a product cannot be found.
	ErrNotFound Error = "not found"
	// ErrInternal wraps any failure reported by the storage engine.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Products are the methods on a storage implementation that are responsible
// for accessing and modifying products.
type Products interface {
	// ListProducts returns every product in insertion order. An empty store
	// yields an empty, non-nil slice.
	ListProducts(ctx context.Context) ([]db.Product, error)
	// GetProduct returns the product with the given ID. An [ErrNotFound] is
	// returned if the ID does not exist.
	GetProduct(ctx context.Context, id int64) (db.Product, error)
	// CreateProduct stores a new product and returns it with its assigned ID.
	// IDs are never reused within the lifetime of the store.
	CreateProduct(ctx context.Context, fields db.ProductFields) (db.Product, error)
	// UpdateProduct overwrites all fields of the product with the given ID.
	// This is a full PUT-style update. The number of affected rows (0 or 1)
	// is returned so callers can detect a missing product.
	UpdateProduct(ctx context.Context, id int64, fields db.ProductFields) (int64, error)
	// DeleteProduct removes the product with the given ID, returning the
	// number of affected rows (0 or 1). Note that this is a hard delete.
	DeleteProduct(ctx context.Context, id int64) (int64, error)
	// CountProducts returns the number of stored products.
	CountProducts(ctx context.Context) (int64, error)
}

// Store is the combination of [Products] and lifecycle methods.
type Store interface {
	Products
	// Ping reports an error if the underlying engine is unreachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
