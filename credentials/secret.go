// Package credentials provides the server secret and the credential check
// used by the album login gate.
package credentials

import (
	"fmt"
	"os"
	"strings"
)

// SecretConfig holds configuration for loading the server secret.
type SecretConfig struct {
	Inline string `mapstructure:"secret" yaml:"secret,omitempty"`           // Secret given directly in config
	File   string `mapstructure:"secret_file" yaml:"secret_file,omitempty"` // Path to a file containing the secret
}

// LoadSecret returns the server secret. The file, when set, takes
// precedence over the inline value. Surrounding whitespace is trimmed.
func LoadSecret(cfg SecretConfig) (string, error) {
	secret := cfg.Inline

	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File) //nolint:gosec // Path is from trusted config file
		if err != nil {
			return "", fmt.Errorf("read secret file: %w", err)
		}
		secret = string(data)
	}

	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", ErrEmptySecret
	}

	return secret, nil
}
