package showoff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// DefaultPage is the listing page shown when none is requested.
const DefaultPage = 1

// Fixed page templates.
const (
	TemplateIndex     = "index.html"
	TemplateSlideshow = "slideshow.html"
	TemplateImage     = "image.html"
	TemplateLogin     = "login.html"
	TemplateNotFound  = "404.html"
)

// PageConfig configures the PageController.
type PageConfig struct {
	// ListTemplates is the set of listing template names a request may pick.
	ListTemplates []string
	// Exif optionally supplies EXIF lines when the store has none.
	Exif ExifReader
}

// PageController renders album listings, slideshows, the album index and
// single image pages. It holds no per-request state.
type PageController struct {
	albums        AlbumStore
	theme         *ThemeResolver
	listTemplates []string
	exif          ExifReader
}

func NewPageController(albums AlbumStore, theme *ThemeResolver, cfg PageConfig) (*PageController, error) {
	if albums == nil || theme == nil {
		return nil, errors.New("new page controller: album store and theme are required")
	}
	if len(cfg.ListTemplates) == 0 {
		return nil, errors.New("new page controller: at least one list template is required")
	}
	return &PageController{
		albums:        albums,
		theme:         theme,
		listTemplates: slices.Clone(cfg.ListTemplates),
		exif:          cfg.Exif,
	}, nil
}

// IsListTemplate reports whether name is a configured listing template.
func (c *PageController) IsListTemplate(name string) bool {
	return slices.Contains(c.listTemplates, name)
}

// Index renders the top-level album listing.
func (c *PageController) Index(ctx context.Context) (RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return RenderedPage{}, fmt.Errorf("index: %w", err)
	}

	albums, err := c.albums.ListAlbums(ctx)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("index: %w", err)
	}

	return c.render(TemplateIndex, map[string]any{
		"Albums": albums,
	})
}

// Show renders page of albumID with the listing template. endpoint names the
// route templates use for pagination links.
func (c *PageController) Show(ctx context.Context, albumID string, page int, endpoint, template string) (RenderedPage, error) {
	if !c.IsListTemplate(template) {
		return RenderedPage{}, fmt.Errorf("show %s: %q: %w", albumID, template, ErrInvalidTemplate)
	}

	listing, err := c.listing(ctx, albumID, page, endpoint, template)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("show %s: %w", albumID, err)
	}

	return c.render(template+".html", map[string]any{
		"Listing": listing,
	})
}

// Slideshow renders page of albumID with the slideshow template.
func (c *PageController) Slideshow(ctx context.Context, albumID string, page int) (RenderedPage, error) {
	listing, err := c.listing(ctx, albumID, page, RouteShowSlideshow, TemplateSlideshow)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("slideshow %s: %w", albumID, err)
	}

	return c.render(TemplateSlideshow, map[string]any{
		"Listing": listing,
	})
}

// ImageInfo renders the metadata page of a single image.
func (c *PageController) ImageInfo(ctx context.Context, albumID, filename string) (RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return RenderedPage{}, fmt.Errorf("image info: %w", err)
	}

	if !IsValidName(albumID) || !IsValidName(filename) {
		return RenderedPage{}, fmt.Errorf("image info %s/%s: %w", albumID, filename, ErrImageNotFound)
	}

	album, err := c.albums.GetAlbum(ctx, albumID)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("image info %s/%s: %w", albumID, filename, notFoundAs(err, ErrImageNotFound))
	}

	info, err := c.albums.GetImage(ctx, albumID, filename)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("image info %s/%s: %w", albumID, filename, notFoundAs(err, ErrImageNotFound))
	}

	if len(info.Exif) == 0 && c.exif != nil {
		lines, exifErr := c.exif.Read(ctx, albumID, filename)
		if exifErr != nil {
			slog.Warn("failed to read exif", "album", albumID, "filename", filename, "err", exifErr)
		} else {
			info.Exif = lines
		}
	}

	return c.render(TemplateImage, map[string]any{
		"Album": album,
		"Image": info,
	})
}

func (c *PageController) listing(ctx context.Context, albumID string, page int, endpoint, template string) (Listing, error) {
	if err := ctx.Err(); err != nil {
		return Listing{}, err
	}

	if page < 1 || !IsValidName(albumID) {
		return Listing{}, ErrPageNotFound
	}

	album, err := c.albums.GetAlbum(ctx, albumID)
	if err != nil {
		return Listing{}, notFoundAs(err, ErrPageNotFound)
	}

	items, err := c.albums.GetPage(ctx, albumID, page)
	if err != nil {
		return Listing{}, notFoundAs(err, ErrPageNotFound)
	}

	listing := Listing{
		Album:    album,
		Number:   page,
		Template: template,
		Endpoint: endpoint,
		Items:    items,
	}

	if page > 1 {
		listing.Prev = page - 1
	}

	hasNext, err := c.albums.HasPage(ctx, albumID, page+1)
	if err != nil {
		return Listing{}, fmt.Errorf("probe next page: %w", err)
	}
	if hasNext {
		listing.Next = page + 1
	}

	return listing, nil
}

func (c *PageController) render(template string, data map[string]any) (RenderedPage, error) {
	var buf bytes.Buffer
	if err := c.theme.Render(&buf, template, data); err != nil {
		return RenderedPage{}, err
	}
	return RenderedPage{Template: c.theme.Resolve(template), Body: buf.Bytes()}, nil
}

// notFoundAs maps a collaborator's ErrNotFound to the given error kind and
// leaves other errors untouched.
func notFoundAs(err, kind error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}
