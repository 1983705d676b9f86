// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, fills in defaults and
// validates that required values are present, so the rest of the app can
// rely on them at runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Fill unset values from DefaultConfig.
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if one
	// exists, before anything reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the WEBKIT_ prefix. The prefix is stripped, the
	rest is lowercased and a double underscore marks nesting:

		WEBKIT_SERVER__PORT            -> server.port          -> Config.Server.Port
		WEBKIT_AUTH__PUBLIC_PATHS      -> auth.public_paths    -> Config.Auth.PublicPaths
		WEBKIT_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Lists are comma separated, durations use Go syntax ("30s", "1m").
*/

// EnvPrefix is the prefix every config env var carries.
const EnvPrefix = "WEBKIT_"

// ServiceName tags logs, traces and metrics.
const ServiceName = "webkit"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Download      DownloadConfig       `koanf:"download" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	// Env is one of local, development, staging, production.
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// The block is optional: the database handle is created lazily on first use,
// and a missing connection target only fails the callers that need it.
// URL, when set, takes precedence over the individual fields.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=1"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=1"`
}

// DSN builds the postgres connection string, or "" when nothing is
// configured.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" {
		return ""
	}

	// JoinHostPort adds brackets for IPv6 hosts; the password is escaped so
	// characters like ':' or '@' don't break the URL.
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; empty disables Redis-backed features.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// AuthConfig controls the Clerk authentication gate.
type AuthConfig struct {
	// SecretKey is the Clerk secret key. Required unless auth is disabled.
	SecretKey string `koanf:"secret_key" validate:"required_unless=Disabled true"`

	// Disabled turns the gate into a pass-through (local development only).
	Disabled bool `koanf:"disabled"`

	// PublicPaths lists paths reachable without a session. A trailing "/*"
	// matches the whole subtree.
	PublicPaths []string `koanf:"public_paths"`
}

// DownloadConfig tunes the blob download helper.
type DownloadConfig struct {
	// Timeout is in seconds.
	Timeout int `koanf:"timeout" validate:"required,min=1"`

	// MaxBytes caps a single download.
	MaxBytes int64 `koanf:"max_bytes" validate:"required,min=1"`

	// AllowedHosts restricts downloads to these hosts and their subdomains.
	// Empty allows any public host.
	AllowedHosts []string `koanf:"allowed_hosts"`

	// AllowPrivateNetworks lets downloads reach loopback, private and
	// link-local addresses. Off outside of tests.
	AllowPrivateNetworks bool `koanf:"allow_private_networks"`
}

// RateLimitConfig configures the Redis fixed-window limiter that guards
// expensive routes.
type RateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests" validate:"min=1"`
	Window   time.Duration `koanf:"window" validate:"min=1s"`
}

// DefaultConfig returns the values used for anything the environment leaves
// unset. Booleans default to false, so they are phrased accordingly.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Auth: AuthConfig{
			PublicPaths: []string{
				"/",
				"/status",
				"/docs",
				"/static/*",
				"/metrics",
				"/api/webhooks/clerk",
				"/api/webhooks/stripe",
			},
		},
		Download: DownloadConfig{
			Timeout:  30,
			MaxBytes: 20 << 20,
		},
		RateLimit: RateLimitConfig{
			Requests: 30,
			Window:   time.Minute,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps WEBKIT_SERVER__PORT to server.port.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// listKeys are the config paths backed by []string fields.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"auth.public_paths":                  true,
	"download.allowed_hosts":             true,
	"observability.health_checks.checks": true,
}

// envValue maps an env var to its config path and splits list values on
// commas. Blank items are dropped.
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads configuration from environment variables, fills in
// defaults and validates the result.
//
// Behavior summary:
//   - Loads env vars with prefix WEBKIT_
//   - Unmarshals into Config
//   - Fills zero values from DefaultConfig (mergo)
//   - Forces observability service name + environment
//   - Validates struct tags, then observability rules
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	// Merge only fills fields that are still zero, so anything set in the
	// environment is kept.
	if err := mergo.Merge(mainConfig, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("could not apply config defaults: %w", err)
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
