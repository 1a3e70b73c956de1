package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType                 string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost                 string
	DBPort                 string
	DBAppDatabase          string
	DBAppUser              string
	DBAppPassword          string
	DBAppConnectionLimit   int
	DBAdminUser            string
	DBAdminPassword        string
	DBAdminConnectionLimit int

	// Authorizer configuration
	AuthzURL      string
	AuthzClientID string

	// Notification configuration
	NotifyURL    string
	NotifyAPIKey string

	// Document storage configuration
	MediaRoot          string
	MediaBaseURL       string
	MediaSigningSecret string
	SignedURLTTL       time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", "3000"),
		DBType:                 getEnv("DB_TYPE", "mysql"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBAppDatabase:          getEnv("DB_APP_DATABASE", ""),
		DBAppUser:              getEnv("DB_APP_USER", ""),
		DBAppPassword:          getEnv("DB_APP_PASSWORD", ""),
		DBAppConnectionLimit:   getEnvAsInt("DB_APP_CONNECTION_LIMIT", 5),
		DBAdminUser:            getEnv("DB_ADMIN_USER", ""),
		DBAdminPassword:        getEnv("DB_ADMIN_PASSWORD", ""),
		DBAdminConnectionLimit: getEnvAsInt("DB_ADMIN_CONNECTION_LIMIT", 2),
		AuthzURL:               getEnv("AUTHZ_URL", ""),
		AuthzClientID:          getEnv("AUTHZ_CLIENT_ID", ""),
		NotifyURL:              getEnv("NOTIFY_URL", ""),
		NotifyAPIKey:           getEnv("NOTIFY_API_KEY", ""),
		MediaRoot:              getEnv("MEDIA_ROOT", "./media"),
		MediaBaseURL:           getEnv("MEDIA_BASE_URL", "/media"),
		MediaSigningSecret:     getEnv("MEDIA_SIGNING_SECRET", ""),
		SignedURLTTL:           getEnvAsDuration("SIGNED_URL_TTL", 15*time.Minute),
	}

	// Validate required fields
	if cfg.DBAppDatabase == "" {
		return nil, fmt.Errorf("DB_APP_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBAppUser == "" {
		return nil, fmt.Errorf("DB_APP_USER is required")
	}
	if cfg.AuthzURL == "" {
		return nil, fmt.Errorf("AUTHZ_URL is required")
	}
	if cfg.AuthzClientID == "" {
		return nil, fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}
	if cfg.MediaSigningSecret == "" {
		return nil, fmt.Errorf("MEDIA_SIGNING_SECRET is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
