package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Cognito  CognitoConfig
	Cache    CacheConfig
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL, default=postgres://localhost:5432/todos?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// CognitoConfig identifies the user pool that owns all credentials.
type CognitoConfig struct {
	Region     string `env:"COGNITO_REGION,       default=eu-west-1"`
	UserPoolID string `env:"COGNITO_USER_POOL_ID"`
	ClientID   string `env:"COGNITO_CLIENT_ID"`
}

type CacheConfig struct {
	TodoTTL time.Duration `env:"TODO_CACHE_TTL, default=5m"`
}

// IsProduction reports whether the process runs with production cookie policy.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
