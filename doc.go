// Package showoff provides the core of a read-only photo album viewer with
// per-album password gating.
//
// The package resolves logical content requests (album listing, slideshow,
// single image page, raw image bytes) into rendered pages or byte streams.
// Authentication is scoped to one album at a time: a session that unlocked
// album A never unlocks album B.
//
// # Key Components
//
//   - RouteTable: logical endpoint names mapped to mount-prefixed URL patterns
//   - ThemeResolver: composes template identifiers from the active theme
//   - AuthGate: decides whether a request may see an album and handles logins
//   - PageController: index, listing, slideshow and image info pages
//   - ImageController: original and pre-generated variant image retrieval
//   - ExifTable: renders "Key|Value" lines as an HTML table
//
// # Collaborators
//
// The core reads content through narrow interfaces:
//
//   - AlbumStore: album settings, pages and image metadata (see the database package)
//   - ImageStorage: image bytes (see the filesystem package)
//   - SessionStore: server-side sessions keyed by client token (see the session package)
//   - CredentialVerifier: credential checks (see the credentials package)
//   - Renderer: the templating engine (see the render package)
//
// # Example Usage
//
//	routes, err := showoff.BuildRouteTable("viewer", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	theme := showoff.NewThemeResolver("default", renderer)
//	pages, err := showoff.NewPageController(store, theme, showoff.PageConfig{
//	    ListTemplates: []string{"list", "grid"},
//	})
//
// See the http package for the request dispatcher that ties these together.
package showoff
