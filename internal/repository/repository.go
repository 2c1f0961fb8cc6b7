// Package repository provides database access layer.
//
// The store runs over database/sql with one of two drivers, selected by the
// DATABASE_URL scheme: modernc.org/sqlite for local sqlite files (the
// default) and pgx for PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/grocerynana/grocerynana/internal/migrations"
	"github.com/grocerynana/grocerynana/internal/model"
)

// sqlitePragmas are applied once per sqlite store on open.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// Store provides database access methods.
type Store struct {
	db      *sql.DB
	dialect string
}

// Open connects to the database described by databaseURL and verifies the
// connection. It does not apply migrations; call Migrate separately.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	dialect, dsn, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	driver := "pgx"
	if dialect == DialectSQLite {
		driver = "sqlite"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch dialect {
	case DialectSQLite:
		// A single connection keeps the pragmas effective and sidesteps
		// table locking on concurrent writes.
		db.SetMaxOpenConns(1)
		for _, pragma := range sqlitePragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
			}
		}
	case DialectPostgres:
		// Connection pool settings
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
	}

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, dialect: dialect}, nil
}

// Migrate applies all pending embedded migrations.
// Migration failure is fatal to startup; callers do not retry.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)

	gooseDialect := s.dialect
	if s.dialect == DialectSQLite {
		gooseDialect = "sqlite3"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// BootstrapRecord returns the sentinel row written by the bootstrap
// migration. A missing row means the store was never migrated.
func (s *Store) BootstrapRecord(ctx context.Context) (*model.BootstrapRecord, error) {
	var rec model.BootstrapRecord

	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM bootstrap_check WHERE id = $1`, model.BootstrapID)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to read bootstrap record: %w", err)
	}

	return &rec, nil
}

// Dialect returns the dialect the store was opened with.
func (s *Store) Dialect() string {
	return s.dialect
}

// DB returns the underlying handle.
// Use sparingly - prefer adding methods to Store.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
