// Package themes embeds the built-in viewer themes.
//
// Each theme is a directory holding page templates (index.html, list.html,
// grid.html, slideshow.html, image.html, login.html, 404.html) and a
// static/ directory served under the static_files route.
package themes

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

// Default is the name of the built-in theme.
const Default = "default"

//go:embed all:default
var embedded embed.FS

// Embedded returns the built-in theme set.
func Embedded() fs.FS {
	return embedded
}

// Load returns the theme set rooted at dir, or the built-in set when dir
// is empty. The named theme must exist in the set.
func Load(dir, theme string) (fs.FS, error) {
	var fsys fs.FS = embedded
	if dir != "" {
		fsys = os.DirFS(dir)
	}

	info, err := fs.Stat(fsys, theme)
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", theme, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("load theme %s: not a directory", theme)
	}

	return fsys, nil
}

// Static returns the static/ directory of theme within fsys.
func Static(fsys fs.FS, theme string) (fs.FS, error) {
	sub, err := fs.Sub(fsys, theme+"/static")
	if err != nil {
		return nil, fmt.Errorf("static files for theme %s: %w", theme, err)
	}
	return sub, nil
}
