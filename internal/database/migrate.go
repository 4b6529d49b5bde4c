package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations
var migrations embed.FS

var gooseDialects = map[string]goose.Dialect{
	DriverMySQL:    goose.DialectMySQL,
	DriverPostgres: goose.DialectPostgres,
	DriverSQLite:   goose.DialectSQLite3,
}

// Migrate brings the schema for dialect up to the newest embedded version.
// Applied versions are tracked by goose in goose_db_version, and each file
// runs in its own transaction.
func Migrate(ctx context.Context, db *sql.DB, dialect string, log zerolog.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("no migrations for dialect %q: %w", dialect, err)
	}
	return migrate(ctx, db, dialect, fsys, log)
}

func migrate(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, log zerolog.Logger) error {
	gd, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}
	p, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Str("file", r.Source.Path).
			Dur("took", r.Duration).
			Str("dialect", dialect).
			Msg("migration applied")
	}
	return nil
}
