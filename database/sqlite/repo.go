// Package sqlite implements showoff.AlbumStore using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sagarc03/showoff"
)

type repo struct {
	db       *sql.DB
	tables   showoff.Tables
	pageSize int
}

func (r *repo) GetAlbum(ctx context.Context, albumID string) (showoff.Album, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, title FROM %s WHERE id = ?`, quoteIdentifier(r.tables.Albums))

	var a showoff.Album
	err := r.db.QueryRowContext(ctx, query, albumID).Scan(&a.ID, &a.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return showoff.Album{}, showoff.ErrNotFound
		}
		return showoff.Album{}, fmt.Errorf("get album: %w", err)
	}

	settings, err := r.settings(ctx, albumID)
	if err != nil {
		return showoff.Album{}, fmt.Errorf("get album: %w", err)
	}
	a.Settings = settings[albumID]

	return a, nil
}

func (r *repo) ListAlbums(ctx context.Context) ([]showoff.Album, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, title FROM %s ORDER BY position, id`, quoteIdentifier(r.tables.Albums))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var albums []showoff.Album
	for rows.Next() {
		var a showoff.Album
		if err := rows.Scan(&a.ID, &a.Title); err != nil {
			return nil, fmt.Errorf("list albums: scan: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list albums: rows: %w", err)
	}

	settings, err := r.settings(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	for i := range albums {
		albums[i].Settings = settings[albums[i].ID]
	}

	return albums, nil
}

func (r *repo) GetPage(ctx context.Context, albumID string, page int) ([]showoff.Item, error) {
	if page < 1 {
		return nil, showoff.ErrNotFound
	}

	if ok, err := r.albumExists(ctx, albumID); err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	} else if !ok {
		return nil, showoff.ErrNotFound
	}

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT filename, title, description
		FROM %s
		WHERE album_id = ?
		ORDER BY position, filename
		LIMIT ? OFFSET ?`, quoteIdentifier(r.tables.Images))

	rows, err := r.db.QueryContext(ctx, query, albumID, r.pageSize, (page-1)*r.pageSize)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []showoff.Item{}
	for rows.Next() {
		var it showoff.Item
		if err := rows.Scan(&it.Filename, &it.Title, &it.Description); err != nil {
			return nil, fmt.Errorf("get page: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get page: rows: %w", err)
	}

	if page > 1 && len(items) == 0 {
		return nil, showoff.ErrNotFound
	}

	return items, nil
}

func (r *repo) HasPage(ctx context.Context, albumID string, page int) (bool, error) {
	if page < 1 {
		return false, nil
	}

	ok, err := r.albumExists(ctx, albumID)
	if err != nil {
		return false, fmt.Errorf("has page: %w", err)
	}
	if !ok {
		return false, nil
	}
	if page == 1 {
		return true, nil
	}

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT COUNT(*) FROM %s WHERE album_id = ?`, quoteIdentifier(r.tables.Images))

	var count int
	if err := r.db.QueryRowContext(ctx, query, albumID).Scan(&count); err != nil {
		return false, fmt.Errorf("has page: count: %w", err)
	}

	return (page-1)*r.pageSize < count, nil
}

func (r *repo) GetImage(ctx context.Context, albumID, filename string) (showoff.ImageInfo, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT album_id, filename, title, description, exif
		FROM %s
		WHERE album_id = ? AND filename = ?`, quoteIdentifier(r.tables.Images))

	var info showoff.ImageInfo
	var exif string

	err := r.db.QueryRowContext(ctx, query, albumID, filename).Scan(
		&info.Album, &info.Filename, &info.Title, &info.Description, &exif,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return showoff.ImageInfo{}, showoff.ErrNotFound
		}
		return showoff.ImageInfo{}, fmt.Errorf("get image: %w", err)
	}

	info.Exif = splitExif(exif)

	return info, nil
}

func (r *repo) albumExists(ctx context.Context, albumID string) (bool, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT 1 FROM %s WHERE id = ?`, quoteIdentifier(r.tables.Albums))

	var one int
	err := r.db.QueryRowContext(ctx, query, albumID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("album exists: %w", err)
	}
	return true, nil
}

// settings loads album settings grouped by album. An empty albumID loads
// settings of every album.
func (r *repo) settings(ctx context.Context, albumID string) (map[string]map[string]string, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT album_id, key, value FROM %s`, quoteIdentifier(r.tables.Settings))
	args := []any{}
	if albumID != "" {
		query += ` WHERE album_id = ?`
		args = append(args, albumID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]map[string]string)
	for rows.Next() {
		var id, key, value string
		if err := rows.Scan(&id, &key, &value); err != nil {
			return nil, fmt.Errorf("load settings: scan: %w", err)
		}
		if out[id] == nil {
			out[id] = make(map[string]string)
		}
		out[id][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load settings: rows: %w", err)
	}

	return out, nil
}

func splitExif(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
