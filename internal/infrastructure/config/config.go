package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	GitRev   string `env:"GIT_REV"`

	Session SessionConfig
	Users   UserServiceConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// SessionConfig points at the external session service that exchanges
// session tokens for identities.
type SessionConfig struct {
	BaseURL     string        `env:"SESSION_SERVICE_BASE_URL, default=https://ug-api.acnapiv3.io/swivel/acnapi-common-services/common"`
	ServerToken string        `env:"SESSION_SERVER_TOKEN"`
	Timeout     time.Duration `env:"SESSION_SERVICE_TIMEOUT,  default=3s"`
}

// UserServiceConfig points at the user directory that reports administrator
// status.
type UserServiceConfig struct {
	BaseURL string        `env:"USER_SERVICE_BASE_URL"`
	Timeout time.Duration `env:"USER_SERVICE_TIMEOUT, default=3s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=esc_ticket_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
