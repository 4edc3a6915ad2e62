package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopworks/catalogsync/domain/catalog"
	"github.com/shopworks/catalogsync/internal/database"
	"gorm.io/gorm"
)

// ProductStore implements catalog.Store using GORM.
type ProductStore struct {
	db     database.Database
	mapper ProductMapper
}

// NewProductStore creates a new ProductStore.
func NewProductStore(db database.Database) ProductStore {
	return ProductStore{db: db}
}

// FindByName returns the product whose name matches exactly. Name matching
// is case-sensitive; a LIKE or collation-based lookup would reconcile
// records that the ingest path treats as distinct.
func (s ProductStore) FindByName(ctx context.Context, name string) (catalog.Product, error) {
	var model ProductModel
	result := s.db.Session(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return catalog.Product{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, name)
		}
		return catalog.Product{}, fmt.Errorf("find product by name: %w", result.Error)
	}
	return s.mapper.ToDomain(model), nil
}

// Insert creates a new row and returns the product with its generated id
// and creation timestamp.
func (s ProductStore) Insert(ctx context.Context, product catalog.Product) (catalog.Product, error) {
	model := s.mapper.ToModel(product)
	model.ID = 0

	result := s.db.Session(ctx).Create(&model)
	if result.Error != nil {
		return catalog.Product{}, fmt.Errorf("insert product: %w", result.Error)
	}
	return s.mapper.ToDomain(model), nil
}

// Search returns products filtered by name and category substrings.
func (s ProductStore) Search(ctx context.Context, name, category string) ([]catalog.Product, error) {
	db := s.db.Session(ctx).Model(&ProductModel{})
	if name != "" {
		db = db.Where("name LIKE ?", "%"+name+"%")
	}
	if category != "" {
		db = db.Where("category LIKE ?", "%"+category+"%")
	}

	var models []ProductModel
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	products := make([]catalog.Product, len(models))
	for i, model := range models {
		products[i] = s.mapper.ToDomain(model)
	}
	return products, nil
}

// Ensure ProductStore implements catalog.Store.
var _ catalog.Store = ProductStore{}
