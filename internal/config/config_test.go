package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:        strings.Repeat("s", 32),
		JWTIssuer:        "book-inventory-api",
		JWTAudience:      "book-inventory-client",
		JWTExpiryMinutes: 60,
		DBPassword:       "pw",
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short secret", func(c *Config) { c.JWTSecret = strings.Repeat("s", 31) }},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }},
		{"missing issuer", func(c *Config) { c.JWTIssuer = "" }},
		{"missing audience", func(c *Config) { c.JWTAudience = "" }},
		{"zero expiry", func(c *Config) { c.JWTExpiryMinutes = 0 }},
		{"negative expiry", func(c *Config) { c.JWTExpiryMinutes = -5 }},
		{"missing db password", func(c *Config) { c.DBPassword = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_EXPIRY_MINUTES", "not-a-number")

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 60, cfg.JWTExpiryMinutes)
	assert.Equal(t, "https://www.googleapis.com/books/v1/volumes", cfg.BooksAPIURL)
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestLoad_LogRetentionOverride(t *testing.T) {
	t.Setenv("LOG_RETENTION_DAYS", "7")

	cfg := Load()
	assert.Equal(t, 7, cfg.LogRetentionDays)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p",
		DBName: "books", DBSSLMode: "disable",
	}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db")
	assert.Contains(t, dsn, "dbname=books")
	assert.Contains(t, dsn, "TimeZone=UTC")
}
