package catalog

import (
	"context"
	"errors"
)

// ErrNotFound indicates no product matched the lookup.
var ErrNotFound = errors.New("product not found")

// Store provides read and insert access to the catalog table. The worker
// never updates or deletes rows; reconciliation flows from the catalog back
// to the record store, not the other way.
type Store interface {
	// FindByName returns the product whose name matches exactly
	// (case-sensitive), or ErrNotFound.
	FindByName(ctx context.Context, name string) (Product, error)

	// Insert creates a new row and returns the product with its
	// store-assigned id and creation timestamp.
	Insert(ctx context.Context, product Product) (Product, error)

	// Search returns products whose name and category contain the given
	// substrings. Empty filters match everything.
	Search(ctx context.Context, name, category string) ([]Product, error)
}
