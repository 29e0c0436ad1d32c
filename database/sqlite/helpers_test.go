package sqlite

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/sagarc03/showoff"
	"github.com/stretchr/testify/require"
)

func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	require.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

func testTables(t *testing.T) showoff.Tables {
	t.Helper()
	suffix := getRandomString(t)
	return showoff.Tables{
		Albums:   "albums_" + suffix,
		Settings: "settings_" + suffix,
		Images:   "images_" + suffix,
	}
}

// setupTestDB opens a migrated in-memory database with unique table names.
func setupTestDB(t *testing.T, pageSize int) *Database {
	t.Helper()
	ctx := context.Background()

	db, err := Connect(ctx, ":memory:", testTables(t), pageSize)
	require.NoError(t, err, "failed to connect")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx), "failed to migrate")

	return db
}

type seedImage struct {
	filename    string
	title       string
	description string
	exif        []string
}

func seedAlbum(t *testing.T, db *Database, id, title string, position int, settings map[string]string, images ...seedImage) {
	t.Helper()
	ctx := context.Background()

	_, err := db.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, title, position) VALUES (?, ?, ?)`, quoteIdentifier(db.tables.Albums)),
		id, title, position)
	require.NoError(t, err)

	for k, v := range settings {
		_, err := db.db.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (album_id, key, value) VALUES (?, ?, ?)`, quoteIdentifier(db.tables.Settings)),
			id, k, v)
		require.NoError(t, err)
	}

	for i, img := range images {
		_, err := db.db.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (album_id, filename, title, description, position, exif) VALUES (?, ?, ?, ?, ?, ?)`,
				quoteIdentifier(db.tables.Images)),
			id, img.filename, img.title, img.description, i, strings.Join(img.exif, "\n"))
		require.NoError(t, err)
	}
}

func images(n int) []seedImage {
	out := make([]seedImage, n)
	for i := range out {
		out[i] = seedImage{filename: fmt.Sprintf("img%02d.jpg", i+1), title: fmt.Sprintf("Image %d", i+1)}
	}
	return out
}
