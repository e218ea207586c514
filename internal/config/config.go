// Package config loads soko's settings from the config file, the SOKO_
// environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
)

// EnvPrefix prefixes every environment variable, e.g. SOKO_API_BASE_URL.
const EnvPrefix = "SOKO"

// Location providers.
const (
	ProviderStatic = "static"
	ProviderIP     = "ip"
	ProviderNone   = "none"
)

// Config is the resolved configuration.
type Config struct {
	Logging  LoggingConfig
	Storage  StorageConfig
	API      APIConfig
	Location LocationConfig
	Search   SearchConfig
}

// APIConfig points at the storefront backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LocationConfig selects how the user's position is found.
type LocationConfig struct {
	Provider string
	IPURL    string
	Lat      float64
	Lng      float64
	Timeout  time.Duration
}

// SearchConfig holds the nearby search radii in kilometres. Zero means the
// per-kind default.
type SearchConfig struct {
	RadiusKm         float64
	ExpandedRadiusKm float64
}

// StorageConfig locates the local key/value database.
type StorageConfig struct {
	Path string
}

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers a default for every key so that environment
// variables are picked up by Unmarshal-style lookups.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("location.provider", ProviderIP)
	v.SetDefault("location.ip_url", geo.DefaultIPLookupURL)
	v.SetDefault("location.lat", geo.Fallback.Lat)
	v.SetDefault("location.lng", geo.Fallback.Lng)
	v.SetDefault("location.timeout", 5*time.Second)
	v.SetDefault("search.radius_km", 0.0)
	v.SetDefault("search.expanded_radius_km", 0.0)
	v.SetDefault("storage.path", "$HOME/.local/share/soko/soko.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "$HOME/.local/state/soko/soko.log")
}

// BindEnv makes every key readable from SOKO_ prefixed variables with dots
// replaced by underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		path = ExpandPath(path)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Location: LocationConfig{
			Provider: strings.ToLower(v.GetString("location.provider")),
			IPURL:    v.GetString("location.ip_url"),
			Lat:      v.GetFloat64("location.lat"),
			Lng:      v.GetFloat64("location.lng"),
			Timeout:  v.GetDuration("location.timeout"),
		},
		Search: SearchConfig{
			RadiusKm:         v.GetFloat64("search.radius_km"),
			ExpandedRadiusKm: v.GetFloat64("search.expanded_radius_km"),
		},
		Storage: StorageConfig{Path: ExpandPath(v.GetString("storage.path"))},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot coerce.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}

	switch c.Location.Provider {
	case ProviderStatic:
		if c.Location.Lat < -90 || c.Location.Lat > 90 || c.Location.Lng < -180 || c.Location.Lng > 180 {
			return fmt.Errorf("%w: location %v is out of range", common.ErrInvalidConfig, c.Location.Coordinate())
		}
	case ProviderIP, ProviderNone:
	default:
		return fmt.Errorf("%w: location.provider %q (want static, ip or none)", common.ErrInvalidConfig, c.Location.Provider)
	}

	if c.Search.RadiusKm < 0 || c.Search.ExpandedRadiusKm < 0 {
		return fmt.Errorf("%w: search radii cannot be negative", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: logging.format %q (want console or json)", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Coordinate returns the configured static position.
func (l LocationConfig) Coordinate() model.Coordinate {
	return model.Coordinate{Lat: l.Lat, Lng: l.Lng}
}

// Locator builds the geo.Locator for the configured provider.
func (l LocationConfig) Locator() geo.Locator {
	switch l.Provider {
	case ProviderStatic:
		return geo.StaticLocator{Coordinate: l.Coordinate()}
	case ProviderIP:
		return geo.NewIPLocator(l.IPURL, l.Timeout)
	default:
		return geo.Unsupported{}
	}
}

// ExpandPath expands a leading ~ and any $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}
