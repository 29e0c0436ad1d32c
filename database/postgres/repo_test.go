package postgres_test

import (
	"context"
	"testing"

	"github.com/sagarc03/showoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_GetAlbum(t *testing.T) {
	ctx := context.Background()
	db, pool, tables := setupTestDB(t, 10)
	seedAlbum(t, pool, tables, "holiday", "Holiday", 0, map[string]string{
		showoff.SettingRequireAuthentication: "yes",
		showoff.SettingUsername:              "guest",
	})
	seedAlbum(t, pool, tables, "open", "Open", 1, nil)
	repo := db.GetRepo()

	album, err := repo.GetAlbum(ctx, "holiday")
	require.NoError(t, err)
	assert.Equal(t, "Holiday", album.Title)
	assert.Equal(t, "yes", album.Setting(showoff.SettingRequireAuthentication))
	assert.Equal(t, "guest", album.Setting(showoff.SettingUsername))

	album, err = repo.GetAlbum(ctx, "open")
	require.NoError(t, err)
	assert.Empty(t, album.Setting(showoff.SettingRequireAuthentication))

	_, err = repo.GetAlbum(ctx, "missing")
	assert.ErrorIs(t, err, showoff.ErrNotFound)
}

func TestRepo_ListAlbums(t *testing.T) {
	ctx := context.Background()
	db, pool, tables := setupTestDB(t, 10)
	seedAlbum(t, pool, tables, "zeta", "Zeta", 0, map[string]string{"require_authentication": "yes"})
	seedAlbum(t, pool, tables, "alpha", "Alpha", 1, nil)
	seedAlbum(t, pool, tables, "beta", "Beta", 0, nil)

	albums, err := db.GetRepo().ListAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 3)

	assert.Equal(t, []string{"beta", "zeta", "alpha"}, []string{albums[0].ID, albums[1].ID, albums[2].ID})
	assert.Equal(t, "yes", albums[1].Setting("require_authentication"))
}

func TestRepo_GetPage(t *testing.T) {
	ctx := context.Background()
	db, pool, tables := setupTestDB(t, 2)
	seedAlbum(t, pool, tables, "a", "A", 0, nil, images(5)...)
	seedAlbum(t, pool, tables, "empty", "Empty", 1, nil)
	repo := db.GetRepo()

	items, err := repo.GetPage(ctx, "a", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "img05.jpg", items[0].Filename)

	_, err = repo.GetPage(ctx, "a", 4)
	assert.ErrorIs(t, err, showoff.ErrNotFound)

	items, err = repo.GetPage(ctx, "empty", 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.GetPage(ctx, "missing", 1)
	assert.ErrorIs(t, err, showoff.ErrNotFound)
}

func TestRepo_HasPage(t *testing.T) {
	ctx := context.Background()
	db, pool, tables := setupTestDB(t, 2)
	seedAlbum(t, pool, tables, "a", "A", 0, nil, images(4)...)
	repo := db.GetRepo()

	tests := []struct {
		album string
		page  int
		want  bool
	}{
		{"a", 1, true},
		{"a", 2, true},
		{"a", 3, false},
		{"missing", 1, false},
	}

	for _, tt := range tests {
		got, err := repo.HasPage(ctx, tt.album, tt.page)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s page %d", tt.album, tt.page)
	}
}

func TestRepo_GetImage(t *testing.T) {
	ctx := context.Background()
	db, pool, tables := setupTestDB(t, 10)
	seedAlbum(t, pool, tables, "a", "A", 0, nil,
		seedImage{filename: "sunset.jpg", title: "Sunset", exif: []string{"Make|Canon"}},
		seedImage{filename: "plain.jpg"},
	)
	repo := db.GetRepo()

	info, err := repo.GetImage(ctx, "a", "sunset.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Sunset", info.Title)
	assert.Equal(t, []string{"Make|Canon"}, info.Exif)

	info, err = repo.GetImage(ctx, "a", "plain.jpg")
	require.NoError(t, err)
	assert.Nil(t, info.Exif)

	_, err = repo.GetImage(ctx, "a", "missing.jpg")
	assert.ErrorIs(t, err, showoff.ErrNotFound)
}
