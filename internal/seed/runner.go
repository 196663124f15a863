package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maigie/maigie-api/internal/platform/postgres"
)

// Connector opens and closes the database used for seeding.
type Connector interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// Applier applies the seed set to a connected database and returns the names
// of the applied seed files.
type Applier interface {
	Apply(ctx context.Context) ([]string, error)
}

// Options describes the environment a seed run targets. Both values are only
// used for reporting.
type Options struct {
	Environment string
	PreviewID   string
}

// Runner performs a seed run.
type Runner struct {
	db      Connector
	applier Applier
	opts    Options
	logger  *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(db Connector, applier Applier, opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		db:      db,
		applier: applier,
		opts:    opts,
		logger:  logger,
	}
}

// Run connects, applies the seed set and disconnects. The database is
// disconnected even when applying fails.
func (r *Runner) Run(ctx context.Context) (err error) {
	log := r.logger.With(
		"correlation_id", uuid.NewString(),
		"component", "seed",
	)
	start := time.Now()

	if err := r.db.Connect(ctx); err != nil {
		log.ErrorContext(ctx, "error seeding database", "error", err)
		return fmt.Errorf("failed to connect for seeding: %w", err)
	}
	defer func() {
		if dErr := r.db.Disconnect(ctx); dErr != nil {
			log.ErrorContext(ctx, "failed to disconnect after seeding", "error", dErr)
			err = errors.Join(err, fmt.Errorf("failed to disconnect after seeding: %w", dErr))
		}
	}()

	applied, err := r.applier.Apply(ctx)
	if err != nil {
		log.ErrorContext(ctx, "error seeding database", "error", err)
		// Constraint violations surface as application errors.
		return fmt.Errorf("failed to apply seeds: %w", postgres.MapError(err))
	}

	previewID := r.opts.PreviewID
	if previewID == "" {
		previewID = "N/A"
	}
	environment := r.opts.Environment
	if environment == "" {
		environment = "unknown"
	}

	log.InfoContext(ctx, "database seeded successfully",
		"environment", environment,
		"preview_id", previewID,
		"seed_files", applied,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
