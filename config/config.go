// Package config handles loading and managing application configuration.
package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storefront configuration
	Store StoreConfig

	// Mercado Pago configuration
	MercadoPago MercadoPagoConfig

	// Order database configuration
	Database DatabaseConfig

	// Email delivery configuration
	Email EmailConfig

	// Security settings
	Security SecurityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string // "debug", "release", or "test"
}

// StoreConfig holds the storefront-facing settings.
type StoreConfig struct {
	// APIBaseURL is the base URL the client engine uses to reach this API.
	APIBaseURL string
	// FrontendURL is where Mercado Pago sends buyers back after checkout.
	FrontendURL string
	// ProductDir is the directory holding downloadable product files.
	ProductDir string
}

// MercadoPagoConfig holds the payment provider credentials.
type MercadoPagoConfig struct {
	AccessToken string
}

// DatabaseConfig holds the order store connection settings.
type DatabaseConfig struct {
	URL string
}

// EmailConfig holds Resend delivery settings.
type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
}

// SecurityConfig holds security-related configuration.
type SecurityConfig struct {
	DownloadTokenSecret string
	WebhookSecret       string
}

// Load reads configuration from environment variables.
// Returns a Config struct with all settings populated.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8000"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Store: StoreConfig{
			APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8000"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
			ProductDir:  getEnv("PRODUCT_DIR", "./files"),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken: getEnv("MP_ACCESS_TOKEN", ""),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("DEFAULT_FROM_EMAIL", "onboarding@resend.dev"),
		},
		Security: SecurityConfig{
			DownloadTokenSecret: getEnv("DOWNLOAD_TOKEN_SECRET", ""),
			WebhookSecret:       getEnv("MP_WEBHOOK_SECRET", ""),
		},
	}
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer with a fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
