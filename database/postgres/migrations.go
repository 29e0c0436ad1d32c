package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/showoff"
)

// Migrate creates all content tables.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables showoff.Tables) error {
	if err := createAlbumsTable(ctx, pool, tables.Albums); err != nil {
		return fmt.Errorf("migrate up %s: %w", tables.Albums, err)
	}
	if err := createSettingsTable(ctx, pool, tables.Settings); err != nil {
		return fmt.Errorf("migrate up %s: %w", tables.Settings, err)
	}
	if err := createImagesTable(ctx, pool, tables.Images); err != nil {
		return fmt.Errorf("migrate up %s: %w", tables.Images, err)
	}
	return nil
}

// DropTables drops all content tables.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables showoff.Tables) error {
	for _, name := range []string{tables.Images, tables.Settings, tables.Albums} {
		sql := fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{name}.Sanitize())
		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("migrate down %s: %w", name, err)
		}
	}
	return nil
}

func createAlbumsTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	indexOrder := pgx.Identifier{fmt.Sprintf("idx_%s_order", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (position, id);
	`,
		quotedTable,
		indexOrder, quotedTable,
	)

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create albums table: %w", err)
	}
	return nil
}

func createSettingsTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			album_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (album_id, key)
		);
	`, pgx.Identifier{tableName}.Sanitize())

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

func createImagesTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	indexPage := pgx.Identifier{fmt.Sprintf("idx_%s_page", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			album_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0,
			exif TEXT[] NOT NULL DEFAULT '{}',
			PRIMARY KEY (album_id, filename)
		);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (album_id, position, filename);
	`,
		quotedTable,
		indexPage, quotedTable,
	)

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create images table: %w", err)
	}
	return nil
}
