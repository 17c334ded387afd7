package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port          string
	StorageDriver string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	GitHubToken    string
	GitHubCacheTTL time.Duration

	LogLevel    string
	LogFormat   string
	CORSOrigins string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "5000"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "devconnector"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:      getEnv("JWT_ISSUER", "devconnector"),
		JWTTTLMinutes:  getEnvInt("JWT_TTL_MINUTES", 6000),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		GitHubCacheTTL: time.Duration(getEnvInt("GITHUB_CACHE_TTL_SECONDS", 300)) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
	}
	return cfg
}

// Validate reports settings the chosen storage driver cannot start without.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.StorageDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the %s driver", c.StorageDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive")
	}
	return nil
}

func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
