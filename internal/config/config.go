package config

import (
	"fmt"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/rules"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env             string        `env:"ENV" env-default:"local"`
	Port            string        `env:"PORT" env-default:"8080"`
	OpenapiLocation string        `env:"OPENAPI_LOCATION" env-default:"./api/openapi.json"`
	Log             LogConfig
	Catalog         CatalogConfig
	Sessions        SessionConfig
	Admin           AdminConfig
	Destinations    DestinationsConfig
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type CatalogConfig struct {
	BaseURL string        `env:"CATALOG_API_URL" env-required:"true"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT" env-default:"5s"`
}

type SessionConfig struct {
	RedisURI string        `env:"SESSIONS_REDIS_URI" env-default:"redis://localhost:6379/0"`
	TTL      time.Duration `env:"SESSION_TTL" env-default:"24h"`
}

type AdminConfig struct {
	// JWTSecret verifies admin tokens. Without it tokens are only decoded and
	// the catalog service remains the authority.
	JWTSecret string `env:"ADMIN_JWT_SECRET"`
}

type DestinationsConfig struct {
	File          string `env:"DESTINATIONS_FILE"`
	UnknownPolicy string `env:"UNKNOWN_DESTINATION_POLICY" env-default:"unconstrained"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read the config: %w", err)
	}

	if _, err := rules.ParseUnknownDestinationPolicy(cfg.Destinations.UnknownPolicy); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}
