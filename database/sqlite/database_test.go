package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_Ping(t *testing.T) {
	db := setupTestDB(t, 0)
	assert.NoError(t, db.Ping(context.Background()))
	assert.Equal(t, DefaultPageSize, db.pageSize)
}

func TestDatabase_Migrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, 10)

	require.NoError(t, db.Migrate(ctx))
	assert.NoError(t, db.Validate(ctx))
}

func TestDatabase_Validate_MissingTable(t *testing.T) {
	ctx := context.Background()

	db, err := Connect(ctx, ":memory:", testTables(t), 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = db.Validate(ctx)
	assert.ErrorContains(t, err, "does not exist")
}

func TestDatabase_Validate_WrongColumns(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, 10)

	_, err := db.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE %s`, quoteIdentifier(db.tables.Images)))
	require.NoError(t, err)
	_, err = db.db.ExecContext(ctx, fmt.Sprintf(
		`CREATE TABLE %s (album_id TEXT NOT NULL, filename INTEGER, title TEXT NOT NULL)`,
		quoteIdentifier(db.tables.Images)))
	require.NoError(t, err)

	err = db.Validate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
	assert.Contains(t, err.Error(), "filename: expected text, got integer")
}

func TestDropTables(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, 10)

	require.NoError(t, DropTables(ctx, db.db, db.tables))
	assert.Error(t, db.Validate(ctx))

	require.NoError(t, Migrate(ctx, db.db, db.tables))
	assert.NoError(t, db.Validate(ctx))
}
