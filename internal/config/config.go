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
	CORS      CORSConfig
	Simulator SimulatorConfig
	Assistant AssistantConfig
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

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SimulatorConfig holds price-simulator configuration.
// MaxDriftPercent bounds the per-tick random delta: each tick draws a
// uniform percentage in [-MaxDriftPercent, +MaxDriftPercent].
type SimulatorConfig struct {
	TickSeconds     int
	MaxDriftPercent float64
	PriceFloor      float64
}

// AssistantConfig holds chat-assistant gateway configuration.
// The gateway API key itself lives encrypted in the database (see
// service.SettingsService); SettingsKey is the fernet key used to
// encrypt and decrypt it.
type AssistantConfig struct {
	GatewayURL  string
	Model       string
	SettingsKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	tickSeconds, err := getEnvInt("SIMULATOR_TICK_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	maxDrift, err := getEnvFloat("SIMULATOR_MAX_DRIFT_PERCENT", 2.0)
	if err != nil {
		return nil, err
	}
	priceFloor, err := getEnvFloat("SIMULATOR_PRICE_FLOOR", 0.01)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investlite.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Simulator: SimulatorConfig{
			TickSeconds:     tickSeconds,
			MaxDriftPercent: maxDrift,
			PriceFloor:      priceFloor,
		},
		Assistant: AssistantConfig{
			GatewayURL:  getEnv("ASSISTANT_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
			Model:       getEnv("ASSISTANT_MODEL", "google/gemini-3-flash-preview"),
			SettingsKey: getEnv("SETTINGS_ENCRYPTION_KEY", ""),
		},
	}

	if config.Simulator.TickSeconds <= 0 {
		return nil, fmt.Errorf("SIMULATOR_TICK_SECONDS must be positive, got %d", config.Simulator.TickSeconds)
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

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
