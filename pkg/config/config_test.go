package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, StorageBadger, cfg.Storage.Driver)
	assert.Equal(t, "./data/badger", cfg.Storage.BadgerDir)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.True(t, cfg.Seed.OnStart)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("STORAGE_NAMESPACE", "staging")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "staging", cfg.Storage.Namespace)
	assert.Equal(t, "cache.internal", cfg.Storage.Redis.Host)
	assert.Equal(t, 90*time.Minute, cfg.Auth.JWTExpiration)
	assert.False(t, cfg.Seed.OnStart)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("soon", time.Hour))
	assert.Equal(t, 5*time.Second, parseDuration("5s", time.Hour))
}
