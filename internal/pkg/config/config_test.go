package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "2020", cfg.Port)
	assert.True(t, cfg.Development())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.SignupTTL)
	assert.Equal(t, time.Duration(0), cfg.Auth.LoginTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "bookmarks", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"ENV":                  "production",
		"JWT_LOGIN_TTL":        "30m",
		"BCRYPT_COST":          "5",
		"CORS_ALLOWED_ORIGINS": "http://localhost:5173,https://app.example.com",
		"REDIS_ADDR":           "localhost:6379",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.Development())
	assert.Equal(t, 30*time.Minute, cfg.Auth.LoginTTL)
	assert.Equal(t, 5, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}

func TestLoad_BcryptCostOutOfRange(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "s3cret",
		"BCRYPT_COST": "64",
	}))
	assert.Error(t, err)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=9999\n"), 0o600))

	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("PORT", "8081")

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, "8081", cfg.Port, "process environment wins over the file")
}

func TestLoad_MissingDotenvIsIgnored(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}
