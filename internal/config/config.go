package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Remote reference API configuration
	ZoteroAPIURL string
	ZoteroAPIKey string
	ZoteroUserID string

	// Object storage configuration
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StoragePublicURL string
	StorageUseSSL    bool

	// Sync tuning
	SyncRetryAttempts    int
	SyncRetryDelay       time.Duration
	SyncBatchSize        int
	SyncProcessBatchSize int
	SyncTempDir          string
	SyncSnapshotDir      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "3000"),
		DBType:               getEnv("DB_TYPE", "postgres"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBDatabase:           getEnv("DB_DATABASE", ""),
		DBUser:               getEnv("DB_USER", ""),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:    getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		ZoteroAPIURL:         getEnv("ZOTERO_API_URL", "https://api.zotero.org"),
		ZoteroAPIKey:         getEnv("ZOTERO_API_KEY", ""),
		ZoteroUserID:         getEnv("ZOTERO_USER_ID", ""),
		StorageEndpoint:      getEnv("STORAGE_ENDPOINT", ""),
		StorageAccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:        getEnv("STORAGE_BUCKET", ""),
		StoragePublicURL:     getEnv("STORAGE_PUBLIC_URL", ""),
		StorageUseSSL:        getEnvAsBool("STORAGE_USE_SSL", true),
		SyncRetryAttempts:    getEnvAsInt("SYNC_RETRY_ATTEMPTS", 3),
		SyncRetryDelay:       time.Duration(getEnvAsInt("SYNC_RETRY_DELAY_MS", 3000)) * time.Millisecond,
		SyncBatchSize:        getEnvAsInt("SYNC_BATCH_SIZE", 500),
		SyncProcessBatchSize: getEnvAsInt("SYNC_PROCESS_BATCH_SIZE", 20),
		SyncTempDir:          getEnv("SYNC_TEMP_DIR", "temp"),
		SyncSnapshotDir:      getEnv("SYNC_SNAPSHOT_DIR", "."),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.ZoteroAPIKey == "" {
		return nil, fmt.Errorf("ZOTERO_API_KEY is required")
	}
	if cfg.StorageEndpoint == "" {
		return nil, fmt.Errorf("STORAGE_ENDPOINT is required")
	}
	if cfg.StorageBucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
