// Package catalog provides canonical product domain types. The catalog is
// the relational table of record: once a product row exists, its values are
// authoritative and are reflected back to the source record store.
package catalog

import "time"

// Product represents a canonical catalog row. A zero ID means the product
// has not been inserted yet.
type Product struct {
	id          int64
	name        string
	category    string
	price       int
	description string
	stock       int
	imageURL    string
	createdAt   time.Time
}

// NewProduct creates a Product pending insertion.
func NewProduct(name, category string, price int, description string, stock int, imageURL string) Product {
	return Product{
		name:        name,
		category:    category,
		price:       price,
		description: description,
		stock:       stock,
		imageURL:    imageURL,
	}
}

// WithID returns a copy with the store-assigned id.
func (p Product) WithID(id int64) Product {
	p.id = id
	return p
}

// WithCreatedAt returns a copy with the creation timestamp.
func (p Product) WithCreatedAt(t time.Time) Product {
	p.createdAt = t
	return p
}

// ID returns the store-assigned identifier (0 until inserted).
func (p Product) ID() int64 { return p.id }

// Name returns the product name.
func (p Product) Name() string { return p.name }

// Category returns the category.
func (p Product) Category() string { return p.category }

// Price returns the price.
func (p Product) Price() int { return p.price }

// Description returns the generated or supplied description.
func (p Product) Description() string { return p.description }

// Stock returns the stock count.
func (p Product) Stock() int { return p.stock }

// ImageURL returns the image URL, possibly empty.
func (p Product) ImageURL() string { return p.imageURL }

// CreatedAt returns the insertion timestamp.
func (p Product) CreatedAt() time.Time { return p.createdAt }

// Persisted reports whether the product has been inserted.
func (p Product) Persisted() bool { return p.id != 0 }
