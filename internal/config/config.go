package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the API server
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Uploads  UploadsConfig
	Seed     SeedConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// HTTPConfig holds HTTP listener configuration
type HTTPConfig struct {
	Port string
	// Origins allowed to call the API from a browser
	CORSOrigin string
}

// UploadsConfig holds file upload configuration
type UploadsConfig struct {
	Dir string
}

// SeedConfig holds dev seed fixture configuration
type SeedConfig struct {
	File string // YAML fixture path, empty = no seeding
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "clubdeck.sqlite"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Database: DatabaseConfig{URL: dbURL},
		HTTP: HTTPConfig{
			Port:       port,
			CORSOrigin: corsOrigin,
		},
		Uploads: UploadsConfig{Dir: uploadDir},
		Seed:    SeedConfig{File: os.Getenv("SEED_FILE")},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
