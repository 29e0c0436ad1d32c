// Package postgres implements showoff.AlbumStore using PostgreSQL
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/showoff"
)

type repo struct {
	pool     *pgxpool.Pool
	tables   showoff.Tables
	pageSize int
}

func (r *repo) GetAlbum(ctx context.Context, albumID string) (showoff.Album, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.title,
			COALESCE(
				(SELECT jsonb_object_agg(s.key, s.value) FROM %s s WHERE s.album_id = a.id),
				'{}'::jsonb
			)
		FROM %s a
		WHERE a.id = $1
	`, r.ident(r.tables.Settings), r.ident(r.tables.Albums))

	var a showoff.Album
	err := r.pool.QueryRow(ctx, query, albumID).Scan(&a.ID, &a.Title, &a.Settings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return showoff.Album{}, showoff.ErrNotFound
		}
		return showoff.Album{}, fmt.Errorf("get album: %w", err)
	}

	return a, nil
}

func (r *repo) ListAlbums(ctx context.Context) ([]showoff.Album, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.title,
			COALESCE(
				(SELECT jsonb_object_agg(s.key, s.value) FROM %s s WHERE s.album_id = a.id),
				'{}'::jsonb
			)
		FROM %s a
		ORDER BY a.position, a.id
	`, r.ident(r.tables.Settings), r.ident(r.tables.Albums))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	albums, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (showoff.Album, error) {
		var a showoff.Album
		err := row.Scan(&a.ID, &a.Title, &a.Settings)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	return albums, nil
}

func (r *repo) GetPage(ctx context.Context, albumID string, page int) ([]showoff.Item, error) {
	if page < 1 {
		return nil, showoff.ErrNotFound
	}

	ok, err := r.albumExists(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	if !ok {
		return nil, showoff.ErrNotFound
	}

	query := fmt.Sprintf(`
		SELECT filename, title, description
		FROM %s
		WHERE album_id = $1
		ORDER BY position, filename
		LIMIT $2 OFFSET $3
	`, r.ident(r.tables.Images))

	rows, err := r.pool.Query(ctx, query, albumID, r.pageSize, (page-1)*r.pageSize)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (showoff.Item, error) {
		var it showoff.Item
		err := row.Scan(&it.Filename, &it.Title, &it.Description)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}

	if page > 1 && len(items) == 0 {
		return nil, showoff.ErrNotFound
	}
	if items == nil {
		items = []showoff.Item{}
	}

	return items, nil
}

func (r *repo) HasPage(ctx context.Context, albumID string, page int) (bool, error) {
	if page < 1 {
		return false, nil
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1),
			(SELECT COUNT(*) FROM %s WHERE album_id = $1)
	`, r.ident(r.tables.Albums), r.ident(r.tables.Images))

	var exists bool
	var count int64
	if err := r.pool.QueryRow(ctx, query, albumID).Scan(&exists, &count); err != nil {
		return false, fmt.Errorf("has page: %w", err)
	}

	if !exists {
		return false, nil
	}
	if page == 1 {
		return true, nil
	}

	return int64(page-1)*int64(r.pageSize) < count, nil
}

func (r *repo) GetImage(ctx context.Context, albumID, filename string) (showoff.ImageInfo, error) {
	query := fmt.Sprintf(`
		SELECT album_id, filename, title, description, exif
		FROM %s
		WHERE album_id = $1 AND filename = $2
	`, r.ident(r.tables.Images))

	var info showoff.ImageInfo
	err := r.pool.QueryRow(ctx, query, albumID, filename).Scan(
		&info.Album, &info.Filename, &info.Title, &info.Description, &info.Exif,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return showoff.ImageInfo{}, showoff.ErrNotFound
		}
		return showoff.ImageInfo{}, fmt.Errorf("get image: %w", err)
	}

	if len(info.Exif) == 0 {
		info.Exif = nil
	}

	return info, nil
}

func (r *repo) albumExists(ctx context.Context, albumID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.ident(r.tables.Albums))

	var exists bool
	if err := r.pool.QueryRow(ctx, query, albumID).Scan(&exists); err != nil {
		return false, fmt.Errorf("album exists: %w", err)
	}
	return exists, nil
}

func (r *repo) ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
