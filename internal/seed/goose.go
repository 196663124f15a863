package seed

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed seeds/*.sql
var embeddedSeeds embed.FS

// Seeds returns the seed files shipped with the binary.
func Seeds() fs.FS {
	sub, err := fs.Sub(embeddedSeeds, "seeds")
	if err != nil {
		// The directory is embedded at build time.
		panic(fmt.Sprintf("seed directory missing from embed: %v", err))
	}
	return sub
}

// DBSource supplies the database/sql handle goose runs against. It is called
// after the runner has connected.
type DBSource func() (*sql.DB, error)

// GooseApplier runs seed files with goose. Versioning is disabled, so every
// file is applied on every run and no version table is written.
type GooseApplier struct {
	source DBSource
	fsys   fs.FS
}

// NewGooseApplier creates an applier for the seed files in fsys.
func NewGooseApplier(source DBSource, fsys fs.FS) *GooseApplier {
	return &GooseApplier{source: source, fsys: fsys}
}

// Apply runs the Up section of every seed file in order.
func (a *GooseApplier) Apply(ctx context.Context) ([]string, error) {
	db, err := a.source()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, a.fsys,
		goose.WithDisableVersioning(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create seed provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run seeds: %w", err)
	}

	applied := make([]string, 0, len(results))
	for _, res := range results {
		applied = append(applied, res.Source.Path)
	}
	return applied, nil
}
