package app

import (
	"context"

	"github.com/dailyspark/vocab-backend/internal/adapter/postgres"
	"github.com/dailyspark/vocab-backend/internal/config"
	"github.com/dailyspark/vocab-backend/migrations"
)

// RunMigrations applies every pending schema migration.
func RunMigrations(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log, "migrate")
	return postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger)
}
