package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/showoff"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// Database provides PostgreSQL database operations.
type Database struct {
	pool     *pgxpool.Pool
	tables   showoff.Tables
	pageSize int
}

// Connect establishes a connection pool to PostgreSQL.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables showoff.Tables, pageSize int) (*Database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Database{
		pool:     pool,
		tables:   tables,
		pageSize: pageSize,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Migrate creates the content tables when they do not exist.
func (d *Database) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, d.pool, d.tables); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *Database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.pool, d.tables)
}

// GetRepo returns the album store backed by this database.
func (d *Database) GetRepo() showoff.AlbumStore {
	return &repo{pool: d.pool, tables: d.tables, pageSize: d.pageSize}
}

// Close closes the database connection pool.
func (d *Database) Close() error {
	d.pool.Close()
	return nil
}
