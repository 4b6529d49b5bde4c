package database

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hbnb/internal/config"
)

func TestDSN(t *testing.T) {
	mysqlDSN, err := DSN(config.DatabaseConfig{
		Driver: DriverMySQL, Host: "db", Port: "3306", User: "hbnb", Password: "pw", Name: "hbnb",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mysqlDSN, "hbnb:pw@tcp(db:3306)/hbnb?"), mysqlDSN)
	assert.Contains(t, mysqlDSN, "parseTime=true")
	assert.Contains(t, mysqlDSN, "charset=utf8mb4")

	pgDSN, err := DSN(config.DatabaseConfig{
		Driver: DriverPostgres, Host: "pg", Port: "5432", User: "hbnb", Password: "pw", Name: "hbnb", SSLMode: "disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres://hbnb:pw@pg:5432/hbnb?sslmode=disable", pgDSN)

	fileDSN, err := DSN(config.DatabaseConfig{Driver: DriverSQLite, Path: "data/hbnb.db"})
	require.NoError(t, err)
	assert.Equal(t, "file:data/hbnb.db?_foreign_keys=on&_busy_timeout=5000", fileDSN)

	a, err := DSN(config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	b, err := DSN(config.DatabaseConfig{Driver: DriverSQLite})
	require.NoError(t, err)
	assert.Contains(t, a, "mode=memory")
	assert.NotEqual(t, a, b, "each in-memory database gets its own name")

	_, err = DSN(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestEveryDialectHasMigrations(t *testing.T) {
	for _, dialect := range []string{DriverMySQL, DriverSQLite, DriverPostgres} {
		body, err := migrations.ReadFile("migrations/" + dialect + "/0001_init.sql")
		require.NoError(t, err, dialect)
		text := string(body)
		up, down := strings.Index(text, "-- +goose Up"), strings.Index(text, "-- +goose Down")
		require.True(t, up >= 0 && down > up, "%s: goose annotations out of order", dialect)
		for _, table := range []string{"users", "amenities", "places", "place_amenity", "reviews"} {
			assert.Contains(t, text[up:down], "CREATE TABLE IF NOT EXISTS "+table+" ", "%s: %s", dialect, table)
			assert.Contains(t, text[down:], "DROP TABLE IF EXISTS "+table+";", "%s: %s", dialect, table)
		}
	}
}

func TestMigrateUnknownDialect(t *testing.T) {
	err := Migrate(context.Background(), nil, "oracle", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, dialect, err := Open(context.Background(), config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, dialect)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func appliedVersions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM goose_db_version WHERE version_id > 0").Scan(&n))
	return n
}

func TestOpenSQLiteAndMigrateTwice(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, Migrate(ctx, db, DriverSQLite, zerolog.Nop()))
	require.NoError(t, Migrate(ctx, db, DriverSQLite, zerolog.Nop()))
	assert.Equal(t, 1, appliedVersions(t, db))

	for _, table := range []string{"users", "amenities", "places", "place_amenity", "reviews"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestMigrateStopsAtFailingFile(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	fsys := fstest.MapFS{
		"00001_first.sql": {Data: []byte("-- +goose Up\nCREATE TABLE first (id INTEGER);\n\n-- +goose Down\nDROP TABLE first;\n")},
		"00002_broken.sql": {Data: []byte("-- +goose Up\nCREATE TABLE second (id INTEGER);\nINSERT INTO missing VALUES (1);\n\n-- +goose Down\nDROP TABLE second;\n")},
	}

	err := migrate(ctx, db, DriverSQLite, fsys, zerolog.Nop())
	require.Error(t, err)
	assert.Equal(t, 1, appliedVersions(t, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE name = 'second'").Scan(&n))
	assert.Zero(t, n, "the failed file is rolled back")
}
