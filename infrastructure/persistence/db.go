package persistence

import (
	"context"

	"github.com/shopworks/catalogsync/internal/database"
)

// AutoMigrate runs GORM auto migration for all models. The worker owns the
// products table schema; full migration tooling stays outside this repo.
func AutoMigrate(ctx context.Context, db database.Database) error {
	return db.Session(ctx).AutoMigrate(&ProductModel{})
}
