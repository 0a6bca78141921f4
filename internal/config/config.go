package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	API    APIConfig
	DB     DBConfig
	Ingest IngestConfig
	Server ServerConfig
}

// APIConfig holds YouTube Data API configuration
type APIConfig struct {
	Key        string        `envconfig:"YOUTUBE_API_KEY" required:"true"`
	BaseURL    string        `envconfig:"YOUTUBE_API_BASE_URL" default:"https://www.googleapis.com/youtube/v3"`
	PageSize   int           `envconfig:"YOUTUBE_API_PAGE_SIZE" default:"50"`
	RateLimit  float64       `envconfig:"YOUTUBE_API_RATE_LIMIT" default:"5"`
	Timeout    time.Duration `envconfig:"YOUTUBE_API_TIMEOUT" default:"30s"`
	MaxRetries int           `envconfig:"YOUTUBE_API_MAX_RETRIES" default:"3"`
}

// DBConfig holds database configuration
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"3306"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Database string `envconfig:"DB_NAME" default:"youtube_meta"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// IngestConfig holds ingestion pipeline configuration
type IngestConfig struct {
	// CommentsPerVideo caps how many top-level comment threads are
	// collected per video; 0 drains the collection fully.
	CommentsPerVideo int `envconfig:"INGEST_COMMENTS_PER_VIDEO" default:"600"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DSN returns the MySQL data source name
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.API); err != nil {
		return nil, fmt.Errorf("failed to load api config: %w", err)
	}

	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to load db config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Ingest); err != nil {
		return nil, fmt.Errorf("failed to load ingest config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.API.RateLimit <= 0 {
		return fmt.Errorf("YOUTUBE_API_RATE_LIMIT must be positive")
	}
	if c.API.PageSize <= 0 || c.API.PageSize > 100 {
		return fmt.Errorf("YOUTUBE_API_PAGE_SIZE must be between 1 and 100")
	}
	if c.Ingest.CommentsPerVideo < 0 {
		return fmt.Errorf("INGEST_COMMENTS_PER_VIDEO must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	return nil
}
