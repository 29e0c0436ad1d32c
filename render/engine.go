// Package render implements showoff.Renderer on top of html/template.
package render

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/sagarc03/showoff"
)

// URLBuilder builds paths for named routes.
type URLBuilder interface {
	Resolve(name string) (string, []string, error)
	URL(name string, params map[string]string) (string, error)
}

// Engine holds every template of a theme set, each named by its path
// relative to the set root, e.g. "default/index.html".
type Engine struct {
	templates *template.Template
}

var _ showoff.Renderer = (*Engine)(nil)

// New parses every *.html file under fsys.
func New(fsys fs.FS, routes URLBuilder) (*Engine, error) {
	if routes == nil {
		return nil, errors.New("new render engine: url builder is required")
	}

	root := template.New("").Funcs(Funcs(routes))

	count := 0
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		if _, err := root.New(p).Parse(string(content)); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		count++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("new render engine: %w", err)
	}

	if count == 0 {
		return nil, errors.New("new render engine: no templates found")
	}

	return &Engine{templates: root}, nil
}

// Render executes the template called name with data.
// Returns showoff.ErrTemplateNotFound when no such template was parsed.
func (e *Engine) Render(w io.Writer, name string, data map[string]any) error {
	t := e.templates.Lookup(name)
	if t == nil {
		return fmt.Errorf("%w: %s", showoff.ErrTemplateNotFound, name)
	}

	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}

// Has reports whether a template called name exists.
func (e *Engine) Has(name string) bool {
	return e.templates.Lookup(name) != nil
}

// Funcs returns the template functions available to every theme.
//
//	exif_table  renders "Key|Value" lines as an HTML table
//	url         builds a route path: {{url "list" "album" .ID "page" 1}}
//	image_url   builds a get_image path for an optional size variant
//	static      builds a path to a file in the theme's static directory
func Funcs(routes URLBuilder) template.FuncMap {
	return template.FuncMap{
		"exif_table": func(lines []string) template.HTML {
			return template.HTML(showoff.ExifTable(lines)) //nolint:gosec // exif lines come from the content store
		},
		"url": func(name string, pairs ...any) (string, error) {
			if len(pairs)%2 != 0 {
				return "", fmt.Errorf("url %s: odd number of parameters", name)
			}
			params := make(map[string]string, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return "", fmt.Errorf("url %s: parameter name %v is not a string", name, pairs[i])
				}
				params[key] = fmt.Sprint(pairs[i+1])
			}
			return routes.URL(name, params)
		},
		"image_url": func(album, filename, size string) (string, error) {
			return imageURL(routes, album, filename, size)
		},
		"static": func(file string) (string, error) {
			return routes.URL(showoff.RouteStaticFiles, map[string]string{"*": strings.TrimPrefix(file, "/")})
		},
	}
}

// imageURL passes size as a path parameter when the get_image pattern has a
// {size} placeholder and as the size query parameter otherwise.
func imageURL(routes URLBuilder, album, filename, size string) (string, error) {
	pattern, _, err := routes.Resolve(showoff.RouteGetImage)
	if err != nil {
		return "", err
	}

	params := map[string]string{"album": album, "filename": filename, "size": size}
	if strings.Contains(pattern, "{size") {
		return routes.URL(showoff.RouteGetImage, params)
	}

	u, err := routes.URL(showoff.RouteGetImage, params)
	if err != nil {
		return "", err
	}
	if size != "" {
		u += "?size=" + url.QueryEscape(size)
	}
	return u, nil
}
