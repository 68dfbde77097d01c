package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Backend  BackendConfig
	Session  SessionConfig
	Cookie   CookieConfig
	Database DatabaseConfig
}

// BackendConfig holds the external loan backend settings
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds session cookie and TTL settings
type SessionConfig struct {
	JWTSecret string
	TTLHours  int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// DatabaseConfig holds session store database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "15"))
	ttlHours, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		Backend: BackendConfig{
			BaseURL: loadBackendURL(appMode),
			Timeout: time.Duration(timeoutSecs) * time.Second,
		},
		Session: SessionConfig{
			JWTSecret: loadJWTSecret(appMode),
			TTLHours:  ttlHours,
		},
		Cookie:   loadCookieConfig(appMode),
		Database: loadDatabaseConfig(appMode),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadBackendURL loads the loan backend base URL based on mode
func loadBackendURL(mode string) string {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}
	return strings.TrimRight(getEnv(prefix+"BACKEND_URL", "http://localhost:8080/api"), "/")
}

// loadJWTSecret loads the session cookie signing secret based on mode
func loadJWTSecret(mode string) string {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}
	return getEnv(prefix+"JWT_SECRET", "default_secret")
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadDatabaseConfig loads session store database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "loanhub_portal"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://portal.loanhub.example.com"
	}
	return origins
}
