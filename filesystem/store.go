// Package filesystem provides the image storage backend for showoff.
// Files are read through an os.Root so album and filename components can
// never escape the storage directory. Content types are detected from file
// extensions.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/sagarc03/showoff"
)

// Store provides read-only file system storage for album images.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Get opens a regular file for reading. Returns showoff.ErrNotFound if the
// file does not exist or is a directory.
func (s *Store) Get(ctx context.Context, path string) (showoff.Object, error) {
	if err := ctx.Err(); err != nil {
		return showoff.Object{}, err
	}

	f, err := s.root.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return showoff.Object{}, showoff.ErrNotFound
		}
		return showoff.Object{}, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		closeQuietly(f, path)
		return showoff.Object{}, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		closeQuietly(f, path)
		return showoff.Object{}, showoff.ErrNotFound
	}

	return showoff.Object{
		Content:     f,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: detectContentType(path),
	}, nil
}

func closeQuietly(f *os.File, path string) {
	if err := f.Close(); err != nil {
		slog.Warn("failed to close file", "path", path, "err", err)
	}
}

func detectContentType(path string) string {
	ext := filepath.Ext(path)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
