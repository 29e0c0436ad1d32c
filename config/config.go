package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/showoff"
	"github.com/sagarc03/showoff/credentials"
	"github.com/sagarc03/showoff/database"
	showoffhttp "github.com/sagarc03/showoff/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for showoff.
type Config struct {
	Env      string                 `mapstructure:"env" yaml:"env" validate:"required,oneof=dev prod"`
	Server   ServerConfig           `mapstructure:"server" yaml:"server"`
	Viewer   ViewerConfig           `mapstructure:"viewer" yaml:"viewer"`
	Database DatabaseConfig         `mapstructure:"database" yaml:"database"`
	Storage  StorageConfig          `mapstructure:"storage" yaml:"storage"`
	Auth     AuthConfig             `mapstructure:"auth" yaml:"auth"`
	Exif     ExifConfig             `mapstructure:"exif" yaml:"exif"`
	CORS     showoffhttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log      LogConfig              `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ViewerConfig holds routing, templates and image variants.
type ViewerConfig struct {
	Prefix        string            `mapstructure:"prefix" yaml:"prefix"`
	Routes        map[string]string `mapstructure:"routes" yaml:"routes,omitempty"`
	ListTemplates []string          `mapstructure:"list_templates" yaml:"list_templates" validate:"required,min=1,dive,required"`
	Theme         string            `mapstructure:"theme" yaml:"theme" validate:"required"`
	ThemeDir      string            `mapstructure:"theme_dir" yaml:"theme_dir,omitempty"`
	ImageSizes    []string          `mapstructure:"image_sizes" yaml:"image_sizes" validate:"dive,required"`
}

// DatabaseConfig holds content store configuration.
type DatabaseConfig struct {
	Type     string         `mapstructure:"type" yaml:"type" validate:"required,oneof=sqlite postgres"`
	DSN      string         `mapstructure:"dsn" yaml:"dsn" validate:"required"`
	PageSize int            `mapstructure:"page_size" yaml:"page_size" validate:"required,min=1,max=1000"`
	Tables   showoff.Tables `mapstructure:"tables" yaml:"tables"`
}

// Connection returns the database connection settings.
func (d DatabaseConfig) Connection() database.Config {
	return database.Config{
		Type:     d.Type,
		DSN:      d.DSN,
		Tables:   d.Tables,
		PageSize: d.PageSize,
	}
}

// StorageConfig holds image storage configuration.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

// AuthConfig holds the server secret and session cookie configuration.
type AuthConfig struct {
	credentials.SecretConfig `mapstructure:",squash" yaml:",inline"`

	CookieName   string        `mapstructure:"cookie_name" yaml:"cookie_name" validate:"required"`
	CookieSecure bool          `mapstructure:"cookie_secure" yaml:"cookie_secure"`
	SessionTTL   time.Duration `mapstructure:"session_ttl" yaml:"session_ttl" validate:"min=0"`
}

// ExifConfig controls reading EXIF data from image files.
type ExifConfig struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled"`
	Keys    []string `mapstructure:"keys" yaml:"keys,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"db-type":      "database.type",
	"db-dsn":       "database.dsn",
	"storage-path": "storage.path",
	"host":         "server.host",
	"port":         "server.port",
	"prefix":       "viewer.prefix",
	"theme":        "viewer.theme",
	"theme-dir":    "viewer.theme_dir",
	"log-level":    "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 5709)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("viewer.prefix", "")
	v.SetDefault("viewer.list_templates", []string{"list", "grid"})
	v.SetDefault("viewer.theme", "default")
	v.SetDefault("viewer.theme_dir", "")
	v.SetDefault("viewer.image_sizes", []string{"thumb", "large"})

	tables := showoff.DefaultTables()
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "showoff.db")
	v.SetDefault("database.page_size", 20)
	v.SetDefault("database.tables.albums", tables.Albums)
	v.SetDefault("database.tables.settings", tables.Settings)
	v.SetDefault("database.tables.images", tables.Images)

	v.SetDefault("storage.path", "./albums")

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.secret_file", "")
	v.SetDefault("auth.cookie_name", "showoff_session")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.session_ttl", "24h")

	v.SetDefault("exif.enabled", false)

	v.SetDefault("cors.enabled", false)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("SHOWOFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := cfg.Database.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	for _, s := range cfg.Viewer.ImageSizes {
		if !showoff.IsValidName(s) {
			return nil, fmt.Errorf("validate config: invalid image size %q", s)
		}
	}

	return &cfg, nil
}
