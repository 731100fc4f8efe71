package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// DetectDriver picks the driver from the DSN. Anything that is not a
// postgres URL is treated as a SQLite path.
func DetectDriver(dsn string) Driver {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Open connects to the database behind dsn and verifies connectivity.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*bun.DB, error) {
	switch DetectDriver(dsn) {
	case DriverPostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if maxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(maxOpenConns)
			sqlDB.SetMaxIdleConns(maxOpenConns)
		}
		return ping(ctx, bun.NewDB(sqlDB, pgdialect.New()))

	default:
		sqlDB, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// single writer; also keeps :memory: databases alive
		sqlDB.SetMaxOpenConns(1)

		bdb := bun.NewDB(sqlDB, sqlitedialect.New())
		if _, err := bdb.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("configure sqlite: %w", err)
		}
		return ping(ctx, bdb)
	}
}

func ping(ctx context.Context, bdb *bun.DB) (*bun.DB, error) {
	if err := bdb.PingContext(ctx); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return bdb, nil
}
