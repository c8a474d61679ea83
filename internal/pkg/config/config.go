package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=2020"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,     default=10s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	SignupTTL  time.Duration `env:"JWT_SIGNUP_TTL, default=1h"`
	LoginTTL   time.Duration `env:"JWT_LOGIN_TTL,  default=0s"`
	BcryptCost int           `env:"BCRYPT_COST,    default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bookmarks"`
}

// RedisConfig is optional: an empty Addr disables the idempotency store.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// Development reports whether the service runs with local defaults.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads an optional .env file from dotenvPath and then the process
// environment. Variables already set in the environment win over the file.
func Load(ctx context.Context, dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", dotenvPath, err)
		}
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return nil, fmt.Errorf("config: BCRYPT_COST %d out of range [4,31]", cfg.Auth.BcryptCost)
	}
	return &cfg, nil
}
