package config

import (
	"errors"
	"os"
	"strconv"
)

// AuthCookieName is the cookie that carries the signed identity token.
const AuthCookieName = "book_inventory_token"

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTIssuer        string
	JWTAudience      string
	JWTExpiryMinutes int

	// Google Books lookup
	BooksAPIKey string
	BooksAPIURL string

	// Server
	Port         string
	CORSOrigin   string
	CookieSecure bool

	// Logging
	LogRetentionDays int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "book_inventory"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", "book-inventory-api"),
		JWTAudience:      getEnv("JWT_AUDIENCE", "book-inventory-client"),
		JWTExpiryMinutes: parseInt(getEnv("JWT_EXPIRY_MINUTES", "60"), 60),

		BooksAPIKey: getEnv("GOOGLE_BOOKS_API_KEY", ""),
		BooksAPIURL: getEnv("GOOGLE_BOOKS_API_URL", "https://www.googleapis.com/books/v1/volumes"),

		Port:         getEnv("PORT", "8080"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:3000"),
		CookieSecure: getEnv("COOKIE_SECURE", "true") == "true",

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
}

// Validate checks the invariants that must hold before the server starts.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT_ISSUER is required")
	}
	if c.JWTAudience == "" {
		return errors.New("JWT_AUDIENCE is required")
	}
	if c.JWTExpiryMinutes <= 0 {
		return errors.New("JWT_EXPIRY_MINUTES must be positive")
	}
	if c.DBPassword == "" {
		return errors.New("DB_PASSWORD is required")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
