package showoff

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
)

// ImageConfig configures the ImageController.
type ImageConfig struct {
	// Sizes is the set of size tokens naming pre-generated variants.
	Sizes []string
}

// ImageController streams stored originals and pre-generated variants.
//
// Originals live at "<album>/<filename>" in ImageStorage and variants at
// "<album>/<size>/<filename>". The controller never generates variants.
type ImageController struct {
	albums  AlbumStore
	storage ImageStorage
	sizes   []string
}

func NewImageController(albums AlbumStore, storage ImageStorage, cfg ImageConfig) (*ImageController, error) {
	if albums == nil || storage == nil {
		return nil, errors.New("new image controller: album store and storage are required")
	}
	for _, s := range cfg.Sizes {
		if !IsValidName(s) {
			return nil, fmt.Errorf("new image controller: invalid size token %q", s)
		}
	}
	return &ImageController{
		albums:  albums,
		storage: storage,
		sizes:   slices.Clone(cfg.Sizes),
	}, nil
}

// IsSize reports whether token is a configured size token.
func (c *ImageController) IsSize(token string) bool {
	return slices.Contains(c.sizes, token)
}

// Get opens the original image when size is empty, or the named variant.
// The caller must close the returned Image.Content.
func (c *ImageController) Get(ctx context.Context, albumID, filename, size string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, fmt.Errorf("get image: %w", err)
	}

	if size != "" && !c.IsSize(size) {
		return Image{}, fmt.Errorf("get image %s/%s: size %q: %w", albumID, filename, size, ErrInvalidVariant)
	}

	if !IsValidName(albumID) || !IsValidName(filename) {
		return Image{}, fmt.Errorf("get image %s/%s: %w", albumID, filename, ErrImageNotFound)
	}

	if _, err := c.albums.GetImage(ctx, albumID, filename); err != nil {
		return Image{}, fmt.Errorf("get image %s/%s: %w", albumID, filename, notFoundAs(err, ErrImageNotFound))
	}

	p := path.Join(albumID, filename)
	missing := ErrImageNotFound
	if size != "" {
		p = path.Join(albumID, size, filename)
		missing = ErrVariantNotFound
	}

	obj, err := c.storage.Get(ctx, p)
	if err != nil {
		return Image{}, fmt.Errorf("get image %s: %w", p, notFoundAs(err, missing))
	}

	return Image{
		Album:       albumID,
		Filename:    filename,
		Size:        size,
		ContentType: obj.ContentType,
		ModTime:     obj.ModTime,
		Content:     obj.Content,
	}, nil
}
