package showoff

import (
	"fmt"
	"regexp"
)

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Tables holds configurable table names for the content store.
type Tables struct {
	Albums   string `mapstructure:"albums" yaml:"albums"`
	Settings string `mapstructure:"settings" yaml:"settings"`
	Images   string `mapstructure:"images" yaml:"images"`
}

// DefaultTables returns the table names used when none are configured.
func DefaultTables() Tables {
	return Tables{
		Albums:   "showoff_albums",
		Settings: "showoff_album_settings",
		Images:   "showoff_images",
	}
}

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that all table names are set, valid and distinct.
func (t Tables) Validate() error {
	names := []struct {
		kind, name string
	}{
		{"albums", t.Albums},
		{"settings", t.Settings},
		{"images", t.Images},
	}

	seen := make(map[string]string, len(names))
	for _, n := range names {
		if n.name == "" {
			return fmt.Errorf("validate tables: %s table name cannot be empty", n.kind)
		}
		if !IsValidTableName(n.name) {
			return fmt.Errorf("validate tables: invalid %s table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", n.kind, n.name)
		}
		if other, ok := seen[n.name]; ok {
			return fmt.Errorf("validate tables: %s and %s share table name %s", other, n.kind, n.name)
		}
		seen[n.name] = n.kind
	}

	return nil
}
