package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultDatabasePath  = "crowdcount.db"
	defaultUploadsSubDir = "uploads"
	defaultZonesFile     = "zones.json"
	defaultCountsLog     = "counts_log.csv"
	defaultSessionSecret = "dev-secret-key-change-me"
)

type Config struct {
	// database path (sqlite)
	DatabasePath string

	// uploads directory for raw video files
	UploadsPath string

	// global flat-file stores
	ZonesFilePath string
	CountsLogPath string

	// session cookie signing secret
	SessionSecret string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadConfig() (Config, error) {
	uploads := getEnvOrDefault("UPLOADS_PATH", filepath.Join(".", defaultUploadsSubDir))
	absUploads, err := filepath.Abs(uploads)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for uploads directory '%s': %w", uploads, err)
	}

	zonesFile := getEnvOrDefault("ZONES_FILE_PATH", defaultZonesFile)
	absZonesFile, err := filepath.Abs(zonesFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for zones file '%s': %w", zonesFile, err)
	}

	countsLog := getEnvOrDefault("COUNTS_LOG_PATH", defaultCountsLog)
	absCountsLog, err := filepath.Abs(countsLog)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for counts log '%s': %w", countsLog, err)
	}

	cfg := Config{
		DatabasePath:  getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		UploadsPath:   absUploads,
		ZonesFilePath: absZonesFile,
		CountsLogPath: absCountsLog,
		SessionSecret: getEnvOrDefault("SESSION_SECRET", defaultSessionSecret),
	}

	return cfg, nil
}
