package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "homi",
			DBName:       "homi",
			SSLMode:      "disable",
			QueryTimeout: 10 * time.Second,
		},
		JWT: JWTConfig{
			AccessSecret: "0123456789abcdef0123456789abcdef",
		},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingDatabaseFields(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Database.User = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Database.DBName = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_WeakJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.AccessSecret = "short"
	assert.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveQueryTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Database.QueryTimeout = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_PoolDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "homi")
	t.Setenv("DB_NAME", "homi")
	t.Setenv("JWT_ACCESS_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5, cfg.Redis.MinIdleConns)
}

func TestGetDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Password = "secret"
	assert.Equal(t,
		"host=localhost port=5432 user=homi password=secret dbname=homi sslmode=disable",
		cfg.Database.GetDSN())
}
