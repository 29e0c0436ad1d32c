package showoff

import (
	"io"
	"time"
)

// Album settings read by the core.
const (
	SettingRequireAuthentication = "require_authentication"
	SettingUsername              = "username"
	SettingPassword              = "password"
)

// Album is a named collection of content pages owned by an external
// content-management system. The viewer only reads it.
type Album struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Settings map[string]string `json:"-"`
}

// Setting returns the album setting for key, or "" when it is not set.
func (a Album) Setting(key string) string {
	return a.Settings[key]
}

// Item references one image shown on a listing page.
type Item struct {
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ImageInfo is the metadata shown on a single image page.
// Exif holds "Key|Value" lines.
type ImageInfo struct {
	Album       string   `json:"album"`
	Filename    string   `json:"filename"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Exif        []string `json:"exif"`
}

// Session binds a client token to exactly one authenticated album.
type Session struct {
	Username  string    `json:"username"`
	Album     string    `json:"album"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the credential material stored in an album's settings.
type Credentials struct {
	Username string
	Password string
}

// Listing is the data handed to listing and slideshow templates.
// Prev and Next are page numbers, 0 when there is no such page.
type Listing struct {
	Album    Album
	Number   int
	Template string
	Endpoint string
	Items    []Item
	Prev     int
	Next     int
}

// RenderedPage is a fully rendered HTML page.
type RenderedPage struct {
	Template string
	Body     []byte
}

// Object is a stored file opened for reading.
type Object struct {
	Content     io.ReadSeekCloser
	Size        int64
	ModTime     time.Time
	ContentType string
}

// Image is an image stream resolved by the ImageController.
// The caller is responsible for closing Content.
type Image struct {
	Album       string
	Filename    string
	Size        string
	ContentType string
	ModTime     time.Time
	Content     io.ReadSeekCloser
}

// Decision is the outcome of the authentication gate.
type Decision int

const (
	// Allow lets the request through to a controller.
	Allow Decision = iota
	// Challenge means the login view for the album must be shown instead.
	Challenge
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Challenge:
		return "challenge"
	default:
		return "unknown"
	}
}
