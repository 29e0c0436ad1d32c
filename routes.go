package showoff

import (
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
)

// Logical route names.
const (
	RouteIndex         = "index"
	RouteLogin         = "login"
	RouteStaticFiles   = "static_files"
	RouteGetImage      = "get_image"
	RouteImagePage     = "image_page"
	RouteList          = "list"
	RouteShow          = "show"
	RouteShowSlideshow = "show_slideshow"
	RouteAlbum         = "album"
)

// DefaultRoute describes a known logical route with its default pattern.
type DefaultRoute struct {
	Pattern string
	Methods []string
}

// DefaultRoutes lists every logical route the viewer serves.
// Patterns use chi syntax and may be overridden by configuration.
var DefaultRoutes = map[string]DefaultRoute{
	RouteIndex:         {Pattern: "/", Methods: []string{http.MethodGet}},
	RouteLogin:         {Pattern: "/{album}/login", Methods: []string{http.MethodGet, http.MethodPost}},
	RouteStaticFiles:   {Pattern: "/static/*", Methods: []string{http.MethodGet}},
	RouteGetImage:      {Pattern: "/{album}/image/{filename}", Methods: []string{http.MethodGet}},
	RouteImagePage:     {Pattern: "/{album}/photo/{filename}", Methods: []string{http.MethodGet}},
	RouteList:          {Pattern: "/{album}/page/{page}", Methods: []string{http.MethodGet}},
	RouteShow:          {Pattern: "/{album}/page/{page}/{template}", Methods: []string{http.MethodGet}},
	RouteShowSlideshow: {Pattern: "/{album}/slideshow/{page}", Methods: []string{http.MethodGet}},
	RouteAlbum:         {Pattern: "/{album}", Methods: []string{http.MethodGet}},
}

// RouteEntry is a registered logical route.
type RouteEntry struct {
	Name    string
	Pattern string
	Methods []string
}

// RouteTable maps logical endpoint names to mount-prefixed URL patterns.
// It is filled before serving starts and only read afterwards.
type RouteTable struct {
	prefix  string
	entries map[string]RouteEntry
}

// NewRouteTable creates an empty table mounted under prefix.
// The prefix is normalised to "" or "/segment".
func NewRouteTable(prefix string) *RouteTable {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return &RouteTable{
		prefix:  prefix,
		entries: make(map[string]RouteEntry),
	}
}

// Prefix returns the normalised mount prefix.
func (t *RouteTable) Prefix() string {
	return t.prefix
}

// Register adds a logical route.
func (t *RouteTable) Register(name, pattern string, methods ...string) error {
	if name == "" {
		return fmt.Errorf("register route: name cannot be empty")
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("register route %s: pattern %q must start with /", name, pattern)
	}
	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("register route %s: %w", name, ErrDuplicateRoute)
	}
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}

	t.entries[name] = RouteEntry{
		Name:    name,
		Pattern: pattern,
		Methods: slices.Clone(methods),
	}
	return nil
}

// Resolve returns the full path pattern and accepted methods of a route.
func (t *RouteTable) Resolve(name string) (string, []string, error) {
	e, ok := t.entries[name]
	if !ok {
		return "", nil, fmt.Errorf("resolve route %s: %w", name, ErrUnknownRoute)
	}
	return t.fullPath(e.Pattern), slices.Clone(e.Methods), nil
}

// Names returns the registered route names in sorted order.
func (t *RouteTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// URL builds a concrete path for a route by substituting {param}
// placeholders. A trailing wildcard is replaced by params["*"].
func (t *RouteTable) URL(name string, params map[string]string) (string, error) {
	full, _, err := t.Resolve(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	rest := full
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		key := rest[open+1 : open+end]
		if i := strings.IndexByte(key, ':'); i >= 0 {
			key = key[:i]
		}
		value, ok := params[key]
		if !ok {
			return "", fmt.Errorf("url for route %s: missing parameter %q", name, key)
		}
		b.WriteString(rest[:open])
		b.WriteString(escapeSegment(value))
		rest = rest[open+end+1:]
	}
	b.WriteString(rest)

	u := b.String()
	if strings.HasSuffix(u, "*") {
		u = strings.TrimSuffix(u, "*") + params["*"]
	}
	return u, nil
}

func (t *RouteTable) fullPath(pattern string) string {
	if t.prefix == "" {
		return pattern
	}
	if pattern == "/" {
		return t.prefix + "/"
	}
	return t.prefix + pattern
}

// BuildRouteTable registers every known logical route, taking patterns from
// the configured mapping and falling back to DefaultRoutes. A configured
// name that the viewer does not know is an error.
func BuildRouteTable(prefix string, patterns map[string]string) (*RouteTable, error) {
	for name := range patterns {
		if _, ok := DefaultRoutes[name]; !ok {
			return nil, fmt.Errorf("build route table: %s: %w", name, ErrUnknownRoute)
		}
	}

	names := make([]string, 0, len(DefaultRoutes))
	for name := range DefaultRoutes {
		names = append(names, name)
	}
	sort.Strings(names)

	t := NewRouteTable(prefix)
	for _, name := range names {
		def := DefaultRoutes[name]
		pattern := def.Pattern
		if p, ok := patterns[name]; ok && p != "" {
			pattern = p
		}
		if err := t.Register(name, pattern, def.Methods...); err != nil {
			return nil, fmt.Errorf("build route table: %w", err)
		}
	}

	return t, nil
}
