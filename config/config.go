package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	DBPath        string
	BackupPath    string
	SyncEndpoint  string
	ProbeInterval time.Duration
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:          GetEnv("PORT", "3000"),
		Env:           GetEnv("ENV", "development"),
		DBPath:        GetEnv("DB_PATH", "./data/expense-tracker.db"),
		BackupPath:    GetEnv("BACKUP_PATH", "./data/backup.json"),
		SyncEndpoint:  GetEnv("SYNC_ENDPOINT", ""),
		ProbeInterval: GetDurationEnv("SYNC_PROBE_INTERVAL", 30*time.Second),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
