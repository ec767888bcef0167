package db

// Fields returns the mutable columns of the product.
func (p Product) Fields() ProductFields {
	return ProductFields{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

// WithID builds the full row for fields stored under id.
func (f ProductFields) WithID(id int64) Product {
	return Product{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		ImageURL:    f.ImageURL,
	}
}
