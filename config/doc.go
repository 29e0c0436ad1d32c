// Package config provides configuration loading and validation for showoff.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SHOWOFF_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with SHOWOFF_ prefix:
//   - server.port → SHOWOFF_SERVER_PORT
//   - database.dsn → SHOWOFF_DATABASE_DSN
//   - auth.secret → SHOWOFF_AUTH_SECRET
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: dev (colored text logs) or prod (JSON logs)
//   - Server: listen host, port and shutdown timeout
//   - Viewer: mount prefix, route overrides, list templates, theme and image sizes
//   - Database: content store type, DSN, page size and table names
//   - Storage: root directory of album image files
//   - Auth: server secret (inline or file) and session cookie settings
//   - Exif: optional EXIF extraction from image files
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//
// A Config is read-only once Load returns.
package config
