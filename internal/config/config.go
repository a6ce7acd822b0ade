// Package config loads the service configuration from the environment.
//
// Values come from BIZREVIEWS_-prefixed environment variables (a `.env` file
// is loaded first when present), are decoded into Config with koanf and are
// checked with go-playground/validator so the process fails fast on bad input.
//
// Nesting uses a double underscore:
//
//	BIZREVIEWS_SERVER__PORT=5000            -> server.port
//	BIZREVIEWS_DATABASE__URI=mongodb://...  -> database.uri
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix shared by every configuration variable.
const EnvPrefix = "BIZREVIEWS_"

// Config is the root configuration object.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Pagination    PaginationConfig     `koanf:"pagination" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds the runtime environment label (local, development, production).
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// BaseURL prefixes the resource links returned by create/update calls.
	// When empty the scheme and host of the incoming request are used.
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
}

// DatabaseConfig contains the MongoDB connection parameters.
type DatabaseConfig struct {
	URI              string        `koanf:"uri" validate:"required"`
	Name             string        `koanf:"name" validate:"required"`
	Collection       string        `koanf:"collection" validate:"required"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout" validate:"min=1s"`
	OperationTimeout time.Duration `koanf:"operation_timeout" validate:"min=100ms"`
	MaxPoolSize      uint64        `koanf:"max_pool_size" validate:"min=1"`
}

// PaginationConfig bounds list endpoints.
type PaginationConfig struct {
	DefaultPageSize int `koanf:"default_page_size" validate:"min=1"`
	MaxPageSize     int `koanf:"max_page_size" validate:"min=1,gtefield=DefaultPageSize"`
}

// RateLimitConfig configures the per-client request limiter.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"required_if=Enabled true"`
	Burst             int     `koanf:"burst"`
}

// DefaultConfig returns the values used for anything the environment leaves unset.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			URI:              "mongodb://127.0.0.1:27017",
			Name:             "dizDB",
			Collection:       "biz",
			ConnectTimeout:   10 * time.Second,
			OperationTimeout: 5 * time.Second,
			MaxPoolSize:      100,
		},
		Pagination: PaginationConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps BIZREVIEWS_SERVER__CORS_ALLOWED_ORIGINS to server.cors_allowed_origins.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// listKeys are split on commas when read from the environment.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

func envValue(key, value string) (string, any) {
	k := envKey(key)
	if listKeys[k] {
		return k, strings.Split(value, ",")
	}
	return k, value
}

// LoadConfig reads the environment, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal on top of the defaults so absent keys keep their default value.
	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = "bizreviews"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
