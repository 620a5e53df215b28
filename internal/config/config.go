package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	APIBaseURL  string // backend address, also used to resolve /static avatar paths
	LogLevel    string
	TokenPath   string // file holding the stored bearer credential
	Environment string
	Port        string // stub server listen port
	JWTSecret   string // stub server token signing secret
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:5000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		TokenPath:   getEnv("TOKEN_PATH", defaultTokenPath()),
		Environment: getEnv("ENVIRONMENT", "production"),
		Port:        getEnv("PORT", "5000"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".soda_token"
	}
	return filepath.Join(home, ".soda", "token")
}
