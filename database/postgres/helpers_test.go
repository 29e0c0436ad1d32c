package postgres_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/showoff"
	"github.com/sagarc03/showoff/database/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	testPool     *pgxpool.Pool
	testPoolOnce sync.Once
	testPoolErr  error
)

// getSharedTestDatabase returns a pool on a container shared by every test
// in the package. Tests are skipped in -short mode.
func getSharedTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	testPoolOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			testPoolErr = fmt.Errorf("start postgres container: %w", err)
			return
		}

		connectionStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = testcontainers.TerminateContainer(pgContainer)
			testPoolErr = fmt.Errorf("connection string: %w", err)
			return
		}

		testPool, testPoolErr = pgxpool.New(ctx, connectionStr)
	})

	require.NoError(t, testPoolErr)
	return testPool
}

// getRandomString generates a random string for unique test identifiers.
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

// getDSN extracts the DSN from the pool config.
func getDSN(pool *pgxpool.Pool) string {
	return pool.Config().ConnString()
}

// setupTestDB connects and migrates uniquely named tables, dropping them on cleanup.
func setupTestDB(t *testing.T, pageSize int) (*postgres.Database, *pgxpool.Pool, showoff.Tables) {
	t.Helper()

	pool := getSharedTestDatabase(t)
	ctx := context.Background()
	tables := testTables(t)

	db, err := postgres.Connect(ctx, getDSN(pool), tables, pageSize)
	require.NoError(t, err, "failed to connect")

	require.NoError(t, db.Migrate(ctx), "failed to migrate")

	t.Cleanup(func() {
		_ = postgres.DropTables(ctx, pool, tables)
		_ = db.Close()
	})

	return db, pool, tables
}

type seedImage struct {
	filename    string
	title       string
	description string
	exif        []string
}

func seedAlbum(t *testing.T, pool *pgxpool.Pool, tables showoff.Tables, id, title string, position int, settings map[string]string, images ...seedImage) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, title, position) VALUES ($1, $2, $3)`, pgx.Identifier{tables.Albums}.Sanitize()),
		id, title, position)
	require.NoError(t, err)

	for k, v := range settings {
		_, err := pool.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (album_id, key, value) VALUES ($1, $2, $3)`, pgx.Identifier{tables.Settings}.Sanitize()),
			id, k, v)
		require.NoError(t, err)
	}

	for i, img := range images {
		exif := img.exif
		if exif == nil {
			exif = []string{}
		}
		_, err := pool.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (album_id, filename, title, description, position, exif) VALUES ($1, $2, $3, $4, $5, $6)`,
				pgx.Identifier{tables.Images}.Sanitize()),
			id, img.filename, img.title, img.description, i, exif)
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
