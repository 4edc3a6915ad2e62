package persistence

import "github.com/shopworks/catalogsync/domain/catalog"

// ProductMapper maps between domain Product and persistence ProductModel.
type ProductMapper struct{}

// ToDomain converts a ProductModel to a domain Product.
func (m ProductMapper) ToDomain(e ProductModel) catalog.Product {
	var description string
	if e.Description != nil {
		description = *e.Description
	}

	var imageURL string
	if e.ImageURL != nil {
		imageURL = *e.ImageURL
	}

	return catalog.NewProduct(e.Name, e.Category, e.Price, description, e.Stock, imageURL).
		WithID(e.ID).
		WithCreatedAt(e.CreatedAt)
}

// ToModel converts a domain Product to a ProductModel.
func (m ProductMapper) ToModel(p catalog.Product) ProductModel {
	var description *string
	if p.Description() != "" {
		d := p.Description()
		description = &d
	}

	var imageURL *string
	if p.ImageURL() != "" {
		u := p.ImageURL()
		imageURL = &u
	}

	return ProductModel{
		ID:          p.ID(),
		Name:        p.Name(),
		Category:    p.Category(),
		Price:       p.Price(),
		Description: description,
		Stock:       p.Stock(),
		ImageURL:    imageURL,
		CreatedAt:   p.CreatedAt(),
	}
}
