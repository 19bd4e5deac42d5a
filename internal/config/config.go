package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/weather"
)

const (
	appDir        = "conditions"
	fileName      = "config.yaml"
	cacheFileName = "cache.db"
)

// File is the persisted part of the configuration.
type File struct {
	Unit           weather.Unit      `yaml:"unit"`
	Location       *weather.Location `yaml:"location,omitempty"`
	WeatherAPIKey  string            `yaml:"weatherapi_key,omitempty"`
	OpenWeatherKey string            `yaml:"openweather_key,omitempty"`
}

func (f File) String() string {
	coords, postal := "not set", "not set"
	if f.Location != nil {
		coords = f.Location.Loc
		postal = f.Location.PostalCode
	}
	key := f.WeatherAPIKey
	if key == "" {
		key = "not set"
	}
	return fmt.Sprintf("Stored Configuration\n  Coordinates: %s\n  Postal Code: %s\n  Unit: %s\n  Weather API Key: %s",
		coords, postal, f.Unit, key)
}

// AppConfig is the file plus environment overrides. Overrides are never
// written back by Save.
type AppConfig struct {
	Path      string
	CachePath string
	Stored    File

	GoogleGeocoderAPIKey string
	HTTPTimeout          time.Duration
	WatchInterval        time.Duration
	LogLevel             string
	Port                 string

	unitOverride        string
	weatherAPIOverride  string
	openWeatherOverride string
}

// DefaultPath returns $XDG_CONFIG_HOME/conditions/config.yaml or the platform equivalent.
func DefaultPath() (string, error) {
	if p := os.Getenv("CONDITIONS_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("no .env file loaded: %v", err)
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &AppConfig{
		Path:   path,
		Stored: File{Unit: weather.Fahrenheit},
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debugf("config: %s does not exist, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg.Stored); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if err := normalizeLocation(&cfg.Stored); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.unitOverride = os.Getenv("CONDITIONS_UNIT")
	cfg.weatherAPIOverride = os.Getenv("WEATHERAPI_API_KEY")
	cfg.openWeatherOverride = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")
	cfg.CachePath = getenvDefault("CONDITIONS_CACHE_PATH", filepath.Join(filepath.Dir(path), cacheFileName))
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "WARN")
	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := time.ParseDuration(getenvDefault("WATCH_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_INTERVAL: %w", err)
	}
	cfg.WatchInterval = interval

	return cfg, nil
}

// Save writes the persisted part of the configuration.
func (c *AppConfig) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c.Stored)
	if err != nil {
		return err
	}
	// The file can hold API keys.
	if err := os.WriteFile(c.Path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Unit is the effective temperature unit.
func (c *AppConfig) Unit() weather.Unit {
	if c.unitOverride != "" {
		return weather.ParseUnit(c.unitOverride)
	}
	return c.Stored.Unit
}

// Credentials returns the effective API key per provider.
func (c *AppConfig) Credentials() map[weather.ProviderID]string {
	return map[weather.ProviderID]string{
		weather.WeatherAPI:  firstNonEmpty(c.weatherAPIOverride, c.Stored.WeatherAPIKey),
		weather.OpenWeather: firstNonEmpty(c.openWeatherOverride, c.Stored.OpenWeatherKey),
	}
}

// Settings is the view of the configuration the orchestrator consumes.
func (c *AppConfig) Settings() weather.Settings {
	return weather.Settings{
		Unit:           c.Unit(),
		StoredLocation: c.Stored.Location,
		Credentials:    c.Credentials(),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// normalizeLocation rebuilds a hand-edited stored location so that Loc always
// matches its coordinate parts. A file holding only loc is split into them.
func normalizeLocation(f *File) error {
	l := f.Location
	if l == nil {
		return nil
	}
	if l.Latitude == "" && l.Longitude == "" && l.Loc != "" {
		loc, err := weather.ParseLoc(l.Loc, l.PostalCode)
		if err != nil {
			return fmt.Errorf("stored location: %w", err)
		}
		f.Location = &loc
		return nil
	}
	if l.Latitude == "" || l.Longitude == "" {
		return errors.New("stored location is missing latitude or longitude")
	}
	loc := weather.NewLocation(l.Latitude, l.Longitude, l.PostalCode)
	f.Location = &loc
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
