// Package migrations embeds the versioned schema applied by guidancectl migrate.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// NewProvider returns a goose provider over the embedded schema. Applied
// versions are recorded in goose_db_version, so Up only runs pending files.
func NewProvider(db *sql.DB, dialect goose.Dialect) (*goose.Provider, error) {
	provider, err := goose.NewProvider(dialect, db, FS)
	if err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration and returns the ones it ran.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) ([]*goose.MigrationResult, error) {
	provider, err := NewProvider(db, dialect)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("migrations: up: %w", err)
	}
	return results, nil
}
