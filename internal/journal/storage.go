package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Driver names the database backing a journal DSN.
type Driver string

const (
	DriverSQLite   Driver = "sqlite3"
	DriverPostgres Driver = "postgres"
)

// DetectDriver infers the driver from a DSN: postgres URLs select Postgres,
// `file:` URIs and paths ending in .db or .sqlite select SQLite.
func DetectDriver(dsn string) (Driver, error) {
	trimmed := strings.TrimSpace(dsn)
	lower := strings.ToLower(trimmed)
	switch {
	case trimmed == "":
		return "", fmt.Errorf("journal: dsn is empty")
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(lower, "file:"),
		trimmed == ":memory:",
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("journal: cannot infer driver from dsn %q", dsn)
	}
}

// Open connects to dsn with the matching Bun dialect.
func Open(dsn string) (*bun.DB, error) {
	driver, err := DetectDriver(dsn)
	if err != nil {
		return nil, err
	}
	sqldb, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", driver, err)
	}
	switch driver {
	case DriverPostgres:
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		// SQLite serialises writers.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}
}

// OpenRepository opens dsn and migrates the journal tables.
func OpenRepository(ctx context.Context, dsn string) (*BunRepository, func() error, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	repo := NewBunRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("journal: migrate: %w", err)
	}
	return repo, db.Close, nil
}
