// Package exif extracts EXIF lines from image files with exiftool.
//
// It backs showoff.ExifReader for images whose content-store record has no
// EXIF lines. Lines use the "Key|Value" form understood by showoff.ExifTable.
package exif

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/barasher/go-exiftool"

	"github.com/sagarc03/showoff"
)

// DefaultKeys are the tags shown when no keys are configured.
var DefaultKeys = []string{
	"Make",
	"Model",
	"LensModel",
	"DateTimeOriginal",
	"ExposureTime",
	"FNumber",
	"ISO",
	"FocalLength",
	"ImageWidth",
	"ImageHeight",
}

// Reader runs a single exiftool process. exiftool reads one request at a
// time, so calls are serialised.
type Reader struct {
	mu   sync.Mutex
	et   *exiftool.Exiftool
	root string
	keys []string
}

var _ showoff.ExifReader = (*Reader)(nil)

// NewReader starts exiftool for images stored under root.
func NewReader(root string, keys []string) (*Reader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}

	if len(keys) == 0 {
		keys = DefaultKeys
	}

	return &Reader{et: et, root: root, keys: keys}, nil
}

// Read returns the EXIF lines of the original image of albumID/filename.
func (r *Reader) Read(ctx context.Context, albumID, filename string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !showoff.IsValidName(albumID) || !showoff.IsValidName(filename) {
		return nil, fmt.Errorf("read exif %s/%s: %w", albumID, filename, showoff.ErrNotFound)
	}

	path := filepath.Join(r.root, albumID, filename)

	r.mu.Lock()
	fis := r.et.ExtractMetadata(path)
	r.mu.Unlock()

	if len(fis) == 0 {
		return nil, fmt.Errorf("read exif %s/%s: no metadata", albumID, filename)
	}
	if err := fis[0].Err; err != nil {
		if errors.Is(err, exiftool.ErrNotExist) {
			return nil, fmt.Errorf("read exif %s/%s: %w", albumID, filename, showoff.ErrNotFound)
		}
		return nil, fmt.Errorf("read exif %s/%s: %w", albumID, filename, err)
	}

	return FormatFields(fis[0].Fields, r.keys), nil
}

// Close stops the exiftool process.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.et.Close()
}

// FormatFields turns exiftool fields into "Key|Value" lines. With keys set,
// lines follow the order of keys and absent tags are skipped; otherwise
// every field is emitted sorted by key.
func FormatFields(fields map[string]any, keys []string) []string {
	if len(keys) == 0 {
		keys = make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			continue
		}
		lines = append(lines, k+"|"+formatValue(v))
	}
	return lines
}

var valueReplacer = strings.NewReplacer("|", "/", "\n", " ", "\r", "")

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return valueReplacer.Replace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = formatValue(p)
		}
		return strings.Join(parts, ", ")
	default:
		return valueReplacer.Replace(fmt.Sprint(t))
	}
}
