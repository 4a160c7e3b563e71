// Package config loads the application configuration from the environment.
//
// Values are read from BIZTIME_* environment variables (a `.env` file in the
// working directory is loaded first if present), decoded into typed structs
// and validated so the process fails fast on missing settings.
//
// Nesting uses a double underscore:
//
//	BIZTIME_DATABASE__HOST=localhost -> database.host -> Config.Database.Host
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment, if it exists,
	// before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "BIZTIME_"

// ServiceName labels logs and APM data for this service.
const ServiceName = "biztime"

// Config is the root configuration object for the application.
//
// Observability is optional; defaults are injected when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains the PostgreSQL connection parameters.
//
// The pool settings are optional: zero leaves the pgxpool default in place.
// Lifetimes are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxConns        int32  `koanf:"max_conns" validate:"gte=0"`
	MinConns        int32  `koanf:"min_conns" validate:"gte=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"gte=0"`
}

// listKeys are the keys whose values are comma separated lists.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// envKey maps BIZTIME_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig loads configuration from environment variables, validates it and
// applies observability defaults.
//
// Behavior summary:
//   - Loads env vars with prefix BIZTIME_, "__" separating nested keys
//   - Unmarshals into Config and validates `validate` tags
//   - Starts from DefaultObservabilityConfig for the optional observability block
//   - Forces the observability service name and environment
//   - Runs ObservabilityConfig.Validate
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// koanf decodes weakly, so "30" fills an int. List values are split here.
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envKey(key)
		if listKeys[key] {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Observability defaults are set before decoding so that a partial
	// BIZTIME_OBSERVABILITY__* override keeps the remaining defaults.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment always follow the primary config so logs
	// and traces are labelled consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
