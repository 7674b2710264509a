package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:        "8470",
			Env:         "development",
			JWTSecret:   "secure-secret-at-least-32-chars-long",
			StoreDriver: "sqlite",
			SQLitePath:  "test.db",
			DBPassword:  "secure-password",
			DBSSLMode:   "require",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"unknown store driver", func(c *Config) { c.StoreDriver = "dynamodb" }, true},
		{"memory driver allowed in development", func(c *Config) { c.StoreDriver = "memory" }, false},
		{"memory driver rejected in production", func(c *Config) {
			c.Env = "production"
			c.StoreDriver = "memory"
		}, true},
		{"default jwt secret rejected in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short jwt secret rejected in production", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
		{"weak db password rejected in production with postgres", func(c *Config) {
			c.Env = "production"
			c.StoreDriver = "postgres"
			c.DBPassword = "password"
		}, true},
		{"weak db password tolerated in production with sqlite", func(c *Config) {
			c.Env = "production"
			c.StoreDriver = "sqlite"
			c.DBPassword = "password"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
