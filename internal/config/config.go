package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	Upstream UpstreamConfig
	Storage  StorageConfig
	S3       S3Config
	MongoDB  MongoDBConfig
	InfluxDB InfluxDBConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port     string
	Host     string
	Timezone string // Used to stamp server-side punches
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret   string
	TTLHours int
}

// UpstreamConfig holds the remote auth and time-clock services
type UpstreamConfig struct {
	AuthURL        string
	PontoURL       string
	TimeoutSeconds int
}

// StorageConfig selects where export artifacts are written
type StorageConfig struct {
	Backend string // local or s3
	Path    string
	BaseURL string
}

// S3Config holds S3 connection details
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for S3-compatible services like MinIO
}

// MongoDBConfig holds MongoDB connection details
type MongoDBConfig struct {
	URI        string
	Username   string
	Password   string
	Host       string
	Port       string
	Database   string
	Collection string
	AuthSource string // Database to authenticate against (default: admin)
}

// InfluxDBConfig holds InfluxDB connection details
type InfluxDBConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8085"),
			Host:     getEnv("HOST", "0.0.0.0"),
			Timezone: getEnv("TIMEZONE", "America/Sao_Paulo"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			TTLHours: getEnvInt("JWT_TTL_HOURS", 24),
		},
		Upstream: UpstreamConfig{
			AuthURL:        getEnv("AUTH_API_URL", "https://www.centrosultransportes.com.br/api_boleto"),
			PontoURL:       getEnv("PONTO_API_URL", "https://www.centrosultransportes.com.br/api_ponto"),
			TimeoutSeconds: getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "local"),
			Path:    getEnv("STORAGE_PATH", "./exports"),
			BaseURL: getEnv("STORAGE_BASE_URL", ""),
		},
		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
		},
		MongoDB: MongoDBConfig{
			URI:        getEnv("MONGODB_URI", ""),
			Username:   getEnv("MONGODB_USERNAME", ""),
			Password:   getEnv("MONGODB_PASSWORD", ""),
			Host:       getEnv("MONGODB_HOST", ""),
			Port:       getEnv("MONGODB_PORT", "27017"),
			Database:   getEnv("MONGODB_DATABASE", "timecard"),
			Collection: getEnv("MONGODB_COLLECTION", "exports"),
			AuthSource: getEnv("MONGODB_AUTH_SOURCE", "admin"),
		},
		InfluxDB: InfluxDBConfig{
			URL:    getEnv("INFLUXDB2_URL", ""),
			Token:  getEnv("INFLUXDB2_TOKEN", ""),
			Org:    getEnv("INFLUXDB2_ORG", ""),
			Bucket: getEnv("INFLUXDB2_BUCKET", ""),
		},
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateConfig validates that required configuration values are present
func ValidateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if config.JWT.TTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	if config.Upstream.AuthURL == "" || config.Upstream.PontoURL == "" {
		return fmt.Errorf("AUTH_API_URL and PONTO_API_URL are required")
	}

	switch config.Storage.Backend {
	case "local":
		if config.Storage.Path == "" {
			return fmt.Errorf("STORAGE_PATH is required for the local storage backend")
		}
	case "s3":
		if config.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required")
		}
		if config.S3.AccessKeyID == "" {
			return fmt.Errorf("S3_ACCESS_KEY_ID is required")
		}
		if config.S3.SecretAccessKey == "" {
			return fmt.Errorf("S3_SECRET_ACCESS_KEY is required")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be local or s3, got %q", config.Storage.Backend)
	}

	// InfluxDB is optional, but a partial configuration is a mistake
	if config.InfluxDB.URL != "" && (config.InfluxDB.Token == "" || config.InfluxDB.Org == "" || config.InfluxDB.Bucket == "") {
		return fmt.Errorf("INFLUXDB2_TOKEN, INFLUXDB2_ORG and INFLUXDB2_BUCKET are required when INFLUXDB2_URL is set")
	}
	return nil
}

// MongoDBEnabled reports whether export history should be persisted
func (c *Config) MongoDBEnabled() bool {
	return c.MongoDB.URI != "" || c.MongoDB.Host != ""
}

// InfluxDBEnabled reports whether export metrics should be written
func (c *Config) InfluxDBEnabled() bool {
	return c.InfluxDB.URL != ""
}

// UpstreamTimeout returns the HTTP client timeout for upstream calls
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// Helper functions for environment variable access
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
