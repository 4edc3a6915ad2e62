// Package persistence provides catalog storage implementations.
package persistence

import "time"

// ProductModel represents a catalog row in the database.
//
// Name is the de-facto natural key for deduplication but is deliberately
// not declared unique: concurrent inserts of the same name are possible
// and unguarded when multiple worker instances run, which this deployment
// does not do.
type ProductModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;index;size:255;not null"`
	Category    string    `gorm:"column:category;index;size:255;not null"`
	Price       int       `gorm:"column:price;not null"`
	Description *string   `gorm:"column:description;type:text"`
	Stock       int       `gorm:"column:stock;default:0"`
	ImageURL    *string   `gorm:"column:image_url;size:1024"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (ProductModel) TableName() string {
	return "products"
}
