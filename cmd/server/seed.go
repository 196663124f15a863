package main

import (
	"context"

	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/platform/postgres"
	"github.com/maigie/maigie-api/internal/seed"
)

// runSeed applies the embedded seed set to DATABASE_URL.
func runSeed(ctx context.Context, provider *config.Provider) error {
	settings, log, err := setup(provider)
	if err != nil {
		return err
	}

	db := postgres.NewDatabase(settings.DatabaseURL, log)
	runner := seed.NewRunner(
		db,
		seed.NewGooseApplier(db.SQLDB, seed.Seeds()),
		seed.Options{
			Environment: settings.Environment,
			PreviewID:   settings.PreviewID,
		},
		log,
	)
	return runner.Run(ctx)
}
