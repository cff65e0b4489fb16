// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host string
	Port string
}

// StorageConfig points at the S3 bucket holding coordinates.json, the
// template PDFs, and the generated contracts.
type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// AuthConfig holds the request credentials the middleware checks.
type AuthConfig struct {
	APIKey    string
	JWTSecret string
}

// DatabaseConfig holds the audit-log database. An empty URL disables the
// audit log; generation and retrieval still work without it.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SERVER_HOST", "0.0.0.0"),
			Port: envOr("PORT", "8080"),
		},
		Storage: StorageConfig{
			Bucket:    os.Getenv("S3_BUCKET_NAME"),
			Region:    os.Getenv("AWS_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
		Auth: AuthConfig{
			APIKey:    os.Getenv("API_KEY"),
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
