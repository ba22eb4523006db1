package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends for the persistent coordinate cache.
const (
	StoreNone     = "none"
	StoreSqlite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds process settings read from the environment (and .env).
type Config struct {
	EDSMBaseURL string
	EDSMTimeout time.Duration
	EDSMPace    time.Duration
	TargetsPath string
	CoordStore  string
	DBPath      string
	DatabaseURL string
	Port        string
}

// Load reads .env (if present) and the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	timeout, err := GetDuration("EDSM_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	pace, err := GetDuration("EDSM_PACE", 200*time.Millisecond)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		EDSMBaseURL: strings.TrimRight(Get("EDSM_BASE_URL", "https://www.edsm.net"), "/"),
		EDSMTimeout: timeout,
		EDSMPace:    pace,
		TargetsPath: Get("TARGETS_PATH", "target_data_input.txt"),
		CoordStore:  strings.ToLower(Get("COORD_STORE", StoreNone)),
		DBPath:      Get("DB_PATH", "data/coords.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        Get("PORT", "8080"),
	}

	switch cfg.CoordStore {
	case StoreNone, StoreSqlite:
	case StorePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required when COORD_STORE=%s", StorePostgres)
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown COORD_STORE %q", cfg.CoordStore)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s=%q: must not be negative", key, v)
	}
	return d, nil
}
