// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server (metrics + health only)
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB (bookings, trips, notifications)
	MongoURI string
	MongoDB  string

	// PostgreSQL (airline/airport reference data)
	PostgresDSN string

	// Flight status providers
	AviationStackBaseURL string
	AviationStackAPIKey  string
	LufthansaBaseURL     string
	LufthansaTokenURL    string
	LufthansaClientID    string
	LufthansaSecret      string
	ProviderTimeout      time.Duration

	// Weather provider
	OpenWeatherBaseURL string
	OpenWeatherAPIKey  string

	// Engine cadence and windows
	ReminderInterval     time.Duration
	FlightStatusInterval time.Duration
	WeatherInterval      time.Duration
	CacheSweepInterval   time.Duration
	StatusCacheTTL       time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "tripwatch"),

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=tripwatch dbname=tripwatch port=5432 sslmode=disable"),

		AviationStackBaseURL: getEnv("AVIATIONSTACK_BASE_URL", "https://api.aviationstack.com/v1"),
		AviationStackAPIKey:  getEnv("AVIATIONSTACK_API_KEY", ""),
		LufthansaBaseURL:     getEnv("LUFTHANSA_BASE_URL", "https://api.lufthansa.com/v1"),
		LufthansaTokenURL:    getEnv("LUFTHANSA_TOKEN_URL", "https://api.lufthansa.com/v1/oauth/token"),
		LufthansaClientID:    getEnv("LUFTHANSA_CLIENT_ID", ""),
		LufthansaSecret:      getEnv("LUFTHANSA_CLIENT_SECRET", ""),
		ProviderTimeout:      time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 10)) * time.Second,

		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),

		ReminderInterval:     time.Duration(getEnvAsInt("REMINDER_INTERVAL_MINUTES", 30)) * time.Minute,
		FlightStatusInterval: time.Duration(getEnvAsInt("FLIGHT_STATUS_INTERVAL_MINUTES", 15)) * time.Minute,
		WeatherInterval:      time.Duration(getEnvAsInt("WEATHER_INTERVAL_HOURS", 6)) * time.Hour,
		CacheSweepInterval:   time.Duration(getEnvAsInt("CACHE_SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,
		StatusCacheTTL:       time.Duration(getEnvAsInt("STATUS_CACHE_TTL_MINUTES", 5)) * time.Minute,
	}

	return config, nil
}

// ReminderTolerance is the half-window around each reminder lead-time. It is
// derived from the polling cadence so every threshold is visited at least
// once: tolerance must be at least half the reminder interval.
func (c *Config) ReminderTolerance() time.Duration {
	tolerance := 30 * time.Minute
	if half := c.ReminderInterval / 2; half > tolerance {
		tolerance = half
	}
	return tolerance
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
