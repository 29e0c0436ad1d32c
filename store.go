package showoff

import (
	"context"
	"io"
)

// AlbumStore is the read-only view of the content store.
//
// All methods accept a context for cancellation and timeout control.
// Implementations return ErrNotFound (possibly wrapped) for unknown albums,
// pages and images.
type AlbumStore interface {
	// GetAlbum returns the album with its settings.
	GetAlbum(ctx context.Context, albumID string) (Album, error)

	// ListAlbums returns all albums ordered for the index page.
	ListAlbums(ctx context.Context) ([]Album, error)

	// GetPage returns the ordered items of a 1-based page.
	// Page 1 of a known album always exists, even when empty.
	GetPage(ctx context.Context, albumID string, page int) ([]Item, error)

	// HasPage reports whether the 1-based page exists for the album.
	HasPage(ctx context.Context, albumID string, page int) (bool, error)

	// GetImage returns the metadata of a single image.
	GetImage(ctx context.Context, albumID, filename string) (ImageInfo, error)
}

// ImageStorage provides the stored image bytes.
type ImageStorage interface {
	// Get opens the object at path for reading.
	// Returns ErrNotFound if nothing is stored there.
	// The caller is responsible for closing the returned content.
	Get(ctx context.Context, path string) (Object, error)
}

// SessionStore is the server-side session store keyed by client token.
// Put must replace any existing session for the token atomically.
type SessionStore interface {
	// Get returns the session for token. Returns ErrNotFound if there is none
	// or it has expired.
	Get(ctx context.Context, token string) (Session, error)
	// Put stores s under token, replacing any previous session.
	Put(ctx context.Context, token string, s Session) error
	// Clear removes the session for token. Clearing a missing session is not an error.
	Clear(ctx context.Context, token string) error
}

// CredentialVerifier checks a login attempt against an album's stored
// credentials, using the server-side secret.
type CredentialVerifier interface {
	Verify(secret string, stored Credentials, username, password string) bool
}

// Renderer is the templating engine. Render returns ErrTemplateNotFound
// (possibly wrapped) when name cannot be resolved.
type Renderer interface {
	Render(w io.Writer, name string, data map[string]any) error
}

// ExifReader extracts "Key|Value" EXIF lines for an image whose stored
// metadata has none.
type ExifReader interface {
	Read(ctx context.Context, albumID, filename string) ([]string, error)
}
