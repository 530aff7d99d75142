package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Snapshot  SnapshotConfig
	EVDS      EVDSConfig
	GoldAPI   GoldAPIConfig
	Refresh   RefreshConfig
	CORS      CORSConfig
	FernetKey string // base64 fernet key for settings stored encrypted
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// SnapshotConfig locates the static per-asset snapshot files.
type SnapshotConfig struct {
	Dir string
}

// EVDSConfig holds the TCMB/EVDS provider configuration.
type EVDSConfig struct {
	BaseURL string
	APIKey  string
}

// GoldAPIConfig holds the commodity/crypto provider configuration.
type GoldAPIConfig struct {
	BaseURL string
	APIKey  string
}

// RefreshConfig controls the daily refresh cache.
type RefreshConfig struct {
	CronSpec       string  // schedule for the catalog-wide refresh
	RatePerSecond  float64 // upstream request pacing
	RefreshOnStart bool
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	rateStr := getEnv("REFRESH_RATE_PER_SECOND", "5")
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("invalid REFRESH_RATE_PER_SECOND %q", rateStr)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/dovizkuru.db"),
		},
		Snapshot: SnapshotConfig{
			Dir: getEnv("SNAPSHOT_DIR", "./data/jsons"),
		},
		EVDS: EVDSConfig{
			BaseURL: getEnv("EVDS_BASE_URL", "https://evds2.tcmb.gov.tr/service/evds"),
			APIKey:  getEnv("EVDS_API_KEY", ""),
		},
		GoldAPI: GoldAPIConfig{
			BaseURL: getEnv("GOLD_API_BASE_URL", "https://api.gold-api.example.com"),
			APIKey:  getEnv("GOLD_API_KEY", ""),
		},
		Refresh: RefreshConfig{
			CronSpec:       getEnv("REFRESH_CRON", "15 0 * * *"), // daily, shortly after midnight
			RatePerSecond:  rate,
			RefreshOnStart: getEnv("REFRESH_ON_START", "true") == "true",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		FernetKey: getEnv("FERNET_KEY", ""),
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
