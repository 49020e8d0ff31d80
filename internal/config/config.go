// Package config loads server configuration from the environment and an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAirportAPIURL = "http://openapi.airport.co.kr/service/rest/FlightStatusList/getFlightStatusList"

// Config holds all configuration for the application
type Config struct {
	// App
	AppEnv         string
	DefaultAirport string

	// Server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	AssetsDir       string

	// Upstream airport API
	AirportAPIBaseURL string
	AirportAPIKey     string
	AirportAPIRows    int
	UpstreamTimeout   time.Duration
	FetchConcurrency  int

	// Feed cache
	FeedCacheCapacity int
	FeedCacheTTL      time.Duration
	FeedRefresh       time.Duration

	// Redis shared store (disabled when RedisHost is empty)
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	SharedCacheTTL time.Duration

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Admin
	AdminToken string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		DefaultAirport: strings.ToUpper(getEnv("DEFAULT_AIRPORT", "USN")),

		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"https://*", "http://localhost:8081"}),
		AssetsDir:       getEnv("ASSETS_DIR", "assets"),

		AirportAPIBaseURL: getEnv("AIRPORT_API_BASE_URL", defaultAirportAPIURL),
		AirportAPIKey:     getEnv("AIRPORT_API_KEY", ""),
		AirportAPIRows:    getEnvAsInt("AIRPORT_API_ROWS", 1000),
		UpstreamTimeout:   getEnvAsDuration("UPSTREAM_TIMEOUT", 8*time.Second),
		FetchConcurrency:  getEnvAsInt("FETCH_CONCURRENCY", 4),

		FeedCacheCapacity: getEnvAsInt("FEED_CACHE_CAPACITY", 32),
		FeedCacheTTL:      getEnvAsDuration("FEED_CACHE_TTL", 0),
		FeedRefresh:       getEnvAsDuration("FEED_REFRESH_INTERVAL", 0),

		RedisHost:      getEnv("REDIS_HOST", ""),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SharedCacheTTL: getEnvAsDuration("SHARED_CACHE_TTL", 60*time.Second),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),

		AdminToken: getEnv("ADMIN_TOKEN", ""),
	}

	if config.FetchConcurrency < 1 {
		config.FetchConcurrency = 1
	}
	if config.FeedCacheCapacity < 1 {
		config.FeedCacheCapacity = 1
	}

	return config, nil
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("8s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
