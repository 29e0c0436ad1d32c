package showoff

import (
	"fmt"
	"io"
	"path"
)

// ThemeResolver composes template identifiers from the theme chosen at
// startup. It does not check that templates exist; the Renderer does.
type ThemeResolver struct {
	theme    string
	renderer Renderer
}

// NewThemeResolver creates a resolver for the given theme directory name.
func NewThemeResolver(theme string, renderer Renderer) *ThemeResolver {
	return &ThemeResolver{theme: theme, renderer: renderer}
}

// Theme returns the active theme name.
func (t *ThemeResolver) Theme() string {
	return t.theme
}

// Resolve returns the template identifier for name within the theme.
func (t *ThemeResolver) Resolve(name string) string {
	return path.Join(t.theme, name)
}

// Render renders the themed template name into w.
func (t *ThemeResolver) Render(w io.Writer, name string, data map[string]any) error {
	id := t.Resolve(name)
	if err := t.renderer.Render(w, id, data); err != nil {
		return fmt.Errorf("render %s: %w", id, err)
	}
	return nil
}
