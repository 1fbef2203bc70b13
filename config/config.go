package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.0"

type Config struct {
	Server      ServerConfig
	DatabaseURL string
	RedisURL    string
	Delivery    DeliveryConfig
	Retention   RetentionConfig
	// APIBaseURL is consumed by the operator UI only; the service itself
	// never dereferences it.
	APIBaseURL  string
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

type DeliveryConfig struct {
	// HTTPTimeout bounds each outbound POST to a target URL.
	HTTPTimeout time.Duration
	// Concurrency is the number of worker goroutines draining the queue.
	Concurrency int
}

type RetentionConfig struct {
	// Period is the age beyond which delivery logs are purged.
	Period time.Duration
	// PurgeInterval is how often the purge task runs.
	PurgeInterval time.Duration
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("HTTP_TIMEOUT", 5)
	v.SetDefault("WORKER_CONCURRENCY", 4)
	v.SetDefault("RETENTION_HOURS", 72)
	v.SetDefault("PURGE_INTERVAL_MINUTES", 60)
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	databaseURL := v.GetString("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := v.GetString("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	httpTimeout := v.GetInt("HTTP_TIMEOUT")
	if httpTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be a positive number of seconds")
	}

	concurrency := v.GetInt("WORKER_CONCURRENCY")
	if concurrency <= 0 {
		return nil, fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}

	retentionHours := v.GetInt("RETENTION_HOURS")
	if retentionHours <= 0 {
		return nil, fmt.Errorf("RETENTION_HOURS must be positive")
	}

	purgeIntervalMinutes := v.GetInt("PURGE_INTERVAL_MINUTES")
	if purgeIntervalMinutes <= 0 {
		return nil, fmt.Errorf("PURGE_INTERVAL_MINUTES must be positive")
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		DatabaseURL: databaseURL,
		RedisURL:    redisURL,
		Delivery: DeliveryConfig{
			HTTPTimeout: time.Duration(httpTimeout) * time.Second,
			Concurrency: concurrency,
		},
		Retention: RetentionConfig{
			Period:        time.Duration(retentionHours) * time.Hour,
			PurgeInterval: time.Duration(purgeIntervalMinutes) * time.Minute,
		},
		APIBaseURL:  v.GetString("API_BASE_URL"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true when running in the development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
