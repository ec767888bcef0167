package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New wraps a connection with the product queries.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the parameterized statements run against the products table.
type Queries struct {
	db DBTX
}

const listProducts = `
SELECT id, name, description, price, image_url
FROM products
ORDER BY id
`

// ListProducts returns every row in insertion order. The result is never nil.
func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.ImageURL,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getProduct = `
SELECT id, name, description, price, image_url
FROM products
WHERE id = ?
`

// GetProduct returns [sql.ErrNoRows] if id does not exist.
func (q *Queries) GetProduct(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRowContext(ctx, getProduct, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.ImageURL,
	)
	return i, err
}

const createProduct = `
INSERT INTO products (name, description, price, image_url)
VALUES (?, ?, ?, ?)
RETURNING id, name, description, price, image_url
`

// CreateProduct inserts a row, letting the engine assign its id.
func (q *Queries) CreateProduct(ctx context.Context, arg ProductFields) (Product, error) {
	row := q.db.QueryRowContext(ctx, createProduct,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.ImageURL,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.ImageURL,
	)
	return i, err
}

const updateProduct = `
UPDATE products
SET name = ?, description = ?, price = ?, image_url = ?
WHERE id = ?
`

// UpdateProductParams are the arguments to [Queries.UpdateProduct].
type UpdateProductParams struct {
	ID int64
	ProductFields
}

// UpdateProduct overwrites every mutable column and returns the number of
// rows affected.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateProduct,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.ImageURL,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteProduct = `
DELETE FROM products
WHERE id = ?
`

// DeleteProduct returns the number of rows removed.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countProducts = `
SELECT count(*) FROM products
`

// CountProducts returns the number of stored rows.
func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProducts)
	var count int64
	err := row.Scan(&count)
	return count, err
}
