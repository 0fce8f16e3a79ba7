package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Port:      "8080",
		JWTSecret: "a-very-long-production-secret-of-32plus-chars",
		DBDriver:  "postgres",
		DBSSLMode: "require",
		Env:       "production",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid production", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, true},
		{"default secret in production", func(c *Config) { c.JWTSecret = "dev-secret-change-in-production" }, true},
		{"short secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"sqlite in production", func(c *Config) { c.DBDriver = "sqlite" }, true},
		{"short secret outside production", func(c *Config) {
			c.Env = "development"
			c.JWTSecret = "short"
		}, false},
		{"sqlite outside production", func(c *Config) {
			c.Env = "test"
			c.DBDriver = "sqlite"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProductionConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.False(t, cfg.IsProduction())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: ""}).IsProduction())
}
