package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/showoff"

	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// Database provides SQLite database operations.
type Database struct {
	db       *sql.DB
	tables   showoff.Tables
	pageSize int
}

// Connect opens the SQLite database at dsn.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables showoff.Tables, pageSize int) (*Database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// every connection to ":memory:" opens its own database
	db.SetMaxOpenConns(1)

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Database{
		db:       db,
		tables:   tables,
		pageSize: pageSize,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Migrate creates the content tables when they do not exist.
func (d *Database) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, d.db, d.tables); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *Database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.db, d.tables)
}

// GetRepo returns the album store backed by this database.
func (d *Database) GetRepo() showoff.AlbumStore {
	return &repo{db: d.db, tables: d.tables, pageSize: d.pageSize}
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}
