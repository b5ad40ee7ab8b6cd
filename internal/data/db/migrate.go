package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsurePostgresIndexes adds indexes gorm tags cannot express. No-op on other dialects.
func EnsurePostgresIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	// ingredient name prefix search
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ingredient_lower_name_prefix
		ON ingredient (LOWER(name) text_pattern_ops);
	`).Error; err != nil {
		return fmt.Errorf("create idx_ingredient_lower_name_prefix: %w", err)
	}
	// default recipe ordering
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_recipe_created_at_id
		ON recipe (created_at DESC, id DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_recipe_created_at_id: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_recipe_author_created_at
		ON recipe (author_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_recipe_author_created_at: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsurePostgresIndexes(s.db); err != nil {
		s.log.Error("Index migration failed", "error", err)
		return err
	}
	return nil
}
