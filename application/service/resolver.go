package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopworks/catalogsync/domain/catalog"
)

// Resolver decides whether a record name already has a canonical catalog
// row. A catalog connectivity error is reported as "absent": the record is
// treated as new and re-evaluated on the next successful cycle, rather than
// blocking the whole cycle on a transient outage.
type Resolver struct {
	products catalog.Store
	logger   *slog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(products catalog.Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{products: products, logger: logger}
}

// Fetch returns the catalog row for the given name, if one exists.
func (r *Resolver) Fetch(ctx context.Context, name string) (catalog.Product, bool) {
	product, err := r.products.FindByName(ctx, name)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			r.logger.Warn("catalog lookup failed, treating record as new",
				slog.String("record", name),
				slog.String("error", err.Error()),
			)
		}
		return catalog.Product{}, false
	}
	return product, true
}

// Exists reports whether a catalog row with the given name exists.
func (r *Resolver) Exists(ctx context.Context, name string) bool {
	_, ok := r.Fetch(ctx, name)
	return ok
}
