// Package dbtest connects repository tests to a disposable PostgreSQL
// database named by TEST_DATABASE_URL. Tests are skipped when it is unset.
package dbtest

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/vasiliy-maslov/tasty-ordering/internal/db"
)

const envURL = "TEST_DATABASE_URL"

// Open returns a migrated database with tables emptied. The same tables are
// truncated again when the test finishes. Packages list only the tables they
// own so their test binaries can run side by side.
func Open(t *testing.T, tables ...string) *sqlx.DB {
	t.Helper()

	url := os.Getenv(envURL)
	if url == "" {
		t.Skipf("%s is not set, skipping PostgreSQL test", envURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", envURL, err)
	}
	poolConfig.MaxConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := db.Migrate(pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	sqlDB := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")

	truncate(t, sqlDB, tables)
	t.Cleanup(func() {
		truncate(t, sqlDB, tables)
		_ = sqlDB.Close()
		pool.Close()
	})

	return sqlDB
}

func truncate(t *testing.T, sqlDB *sqlx.DB, tables []string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	_, err := sqlDB.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " RESTART IDENTITY")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}
