package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Mapbox    MapboxConfig    `mapstructure:"mapbox"`
	Fallback  FallbackConfig  `mapstructure:"fallback"`
	Gallery   GalleryConfig   `mapstructure:"gallery"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`
	WriteTimeout   int    `mapstructure:"write_timeout"`
	RequestTimeout int    `mapstructure:"request_timeout"`
	AllowOrigins   string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MapboxConfig configures the primary (credentialed) map provider.
//
// The access token has two sources with fixed precedence: SecretToken
// (SKYATLAS_MAPBOX_SECRET_TOKEN, then MAPBOX_SECRET_TOKEN) wins over
// PublicToken (SKYATLAS_MAPBOX_PUBLIC_TOKEN, then NEXT_PUBLIC_MAPBOX_TOKEN).
// A missing token is not a startup error: map requests fail individually.
type MapboxConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Style       string `mapstructure:"style"`
	MarkerColor string `mapstructure:"marker_color"`
	SecretToken string `mapstructure:"secret_token"`
	PublicToken string `mapstructure:"public_token"`
	Timeout     int    `mapstructure:"timeout"`
}

// Token returns the effective access token, or "" if none is configured.
func (m MapboxConfig) Token() string {
	if m.SecretToken != "" {
		return m.SecretToken
	}
	return m.PublicToken
}

// FallbackConfig configures the credential-free OpenStreetMap provider.
type FallbackConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

type GalleryConfig struct {
	MetaFile  string `mapstructure:"meta_file"`
	PublicDir string `mapstructure:"public_dir"`
}

// ValkeyConfig points at the shared rate-limit store. Empty Addr keeps
// limiter state in process memory.
type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type RateLimitConfig struct {
	Max    int `mapstructure:"max"`
	Window int `mapstructure:"window"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Seconds converts a whole-second config value.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// dotenvFiles are loaded in order; earlier files win since godotenv never
// overrides a variable that is already set.
var dotenvFiles = []string{".env.local", ".env"}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f) // OK if missing
	}

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.request_timeout", 20)
	v.SetDefault("server.allow_origins", "http://localhost:3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("mapbox.base_url", "https://api.mapbox.com")
	v.SetDefault("mapbox.style", "streets-v11")
	v.SetDefault("mapbox.marker_color", "ff4757")
	v.SetDefault("mapbox.secret_token", "")
	v.SetDefault("mapbox.public_token", "")
	v.SetDefault("mapbox.timeout", 8)
	v.SetDefault("fallback.enabled", true)
	v.SetDefault("fallback.base_url", "https://staticmap.openstreetmap.de/staticmap.php")
	v.SetDefault("fallback.timeout", 8)
	v.SetDefault("gallery.meta_file", "data/imagesMeta.json")
	v.SetDefault("gallery.public_dir", "public")
	v.SetDefault("valkey.addr", "")
	v.SetDefault("rate_limit.max", 120)
	v.SetDefault("rate_limit.window", 60)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: SKYATLAS_MAPBOX_STYLE → mapbox.style
	v.SetEnvPrefix("SKYATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Token variables also accept the unprefixed names used by the web app.
	// BindEnv checks the names in order.
	if err := v.BindEnv("mapbox.secret_token", "SKYATLAS_MAPBOX_SECRET_TOKEN", "MAPBOX_SECRET_TOKEN"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("mapbox.public_token", "SKYATLAS_MAPBOX_PUBLIC_TOKEN", "NEXT_PUBLIC_MAPBOX_TOKEN"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("log.level", "SKYATLAS_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Mapbox.BaseURL == "" {
		errs = append(errs, "mapbox.base_url is required")
	}
	if c.Mapbox.Style == "" {
		errs = append(errs, "mapbox.style is required")
	}
	if c.Mapbox.Timeout <= 0 || c.Mapbox.Timeout > 60 {
		errs = append(errs, fmt.Sprintf("mapbox.timeout must be 1-60 seconds, got %d", c.Mapbox.Timeout))
	}
	if c.Fallback.Enabled && c.Fallback.BaseURL == "" {
		errs = append(errs, "fallback.base_url is required when fallback is enabled")
	}
	if c.Fallback.Enabled && (c.Fallback.Timeout <= 0 || c.Fallback.Timeout > 60) {
		errs = append(errs, fmt.Sprintf("fallback.timeout must be 1-60 seconds, got %d", c.Fallback.Timeout))
	}
	if c.Gallery.MetaFile == "" {
		errs = append(errs, "gallery.meta_file is required")
	}
	if c.RateLimit.Max <= 0 {
		errs = append(errs, "rate_limit.max must be positive")
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, "rate_limit.window must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
