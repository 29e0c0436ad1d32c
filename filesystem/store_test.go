package filesystem_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/showoff"
	"github.com/sagarc03/showoff/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*filesystem.Store, string) {
	t.Helper()
	tempDir := t.TempDir()
	root, err := os.OpenRoot(tempDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return filesystem.NewFileStorage(root), tempDir
}

func writeFile(t *testing.T, dir, rel, data string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
}

func TestStore_Get_Success(t *testing.T) {
	store, dir := newTestStore(t)
	writeFile(t, dir, "summer/1.jpg", "jpeg data")

	obj, err := store.Get(context.Background(), "summer/1.jpg")
	require.NoError(t, err)
	defer func() { _ = obj.Content.Close() }()

	assert.Equal(t, int64(9), obj.Size)
	assert.Equal(t, "image/jpeg", obj.ContentType)
	assert.False(t, obj.ModTime.IsZero())

	data, err := io.ReadAll(obj.Content)
	require.NoError(t, err)
	assert.Equal(t, "jpeg data", string(data))
}

func TestStore_Get_Variant(t *testing.T) {
	store, dir := newTestStore(t)
	writeFile(t, dir, "summer/small/1.png", "png data")

	obj, err := store.Get(context.Background(), "summer/small/1.png")
	require.NoError(t, err)
	defer func() { _ = obj.Content.Close() }()

	assert.Equal(t, "image/png", obj.ContentType)
}

func TestStore_Get_UnknownExtension(t *testing.T) {
	store, dir := newTestStore(t)
	writeFile(t, dir, "summer/raw.xyz123", "raw")

	obj, err := store.Get(context.Background(), "summer/raw.xyz123")
	require.NoError(t, err)
	defer func() { _ = obj.Content.Close() }()

	assert.Equal(t, "application/octet-stream", obj.ContentType)
}

func TestStore_Get_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "summer/missing.jpg")
	assert.ErrorIs(t, err, showoff.ErrNotFound)
}

func TestStore_Get_Directory(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "summer", "small"), 0o755))

	_, err := store.Get(context.Background(), "summer/small")
	assert.ErrorIs(t, err, showoff.ErrNotFound)
}

func TestStore_Get_Escape(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "../outside.jpg")
	assert.Error(t, err)
}

func TestStore_Get_ContextCanceled(t *testing.T) {
	store, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "summer/1.jpg")
	assert.Equal(t, context.Canceled, err)
}
