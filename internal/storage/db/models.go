package db

// Product is a row of the products table.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

// ProductFields are the caller-supplied columns of a [Product].
type ProductFields struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
}
