package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Catalog CatalogConfig
	Sync    SyncConfig
	CORS    CORSConfig
	S3      S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// StoreConfig configures the local persistent store. SQLite is the
// default since the cache lives alongside the process; Postgres can be
// selected for shared deployments.
type StoreConfig struct {
	Driver     string // sqlite, postgres
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

// CatalogConfig points at the remote catalog service.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SyncConfig controls the optional background cache refresh.
type SyncConfig struct {
	RefreshEnabled  bool
	RefreshSchedule string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", "sqlite"),
			SQLitePath: getEnv("STORE_SQLITE_PATH", "tienda.db"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "admin"),
			Password:   getEnv("DB_PASSWORD", "1234"),
			DBName:     getEnv("DB_NAME", "tienda"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:3000"),
			Timeout: parseDuration(getEnv("CATALOG_TIMEOUT", "10s")),
		},
		Sync: SyncConfig{
			RefreshEnabled:  getEnv("SYNC_REFRESH_ENABLED", "false") == "true",
			RefreshSchedule: getEnv("SYNC_REFRESH_SCHEDULE", "@every 30m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", "tienda-uploads"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
	}

	return config, nil
}

func (c *StoreConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 10s", s)
		return 10 * time.Second
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
