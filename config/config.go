package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const AVATAR_SIZE = 80

// Config holds everything read from the environment at startup.
type Config struct {
	Port       string
	GinMode    string
	DBUser     string
	DBPass     string
	DBHost     string
	DBName     string
	FEOrigins  []string
	BucketName string
}

// Load reads a .env file if present and then the process environment.
func Load() (*Config, error) {
	// missing .env is fine: deployed environments set real env vars
	_ = godotenv.Load()

	cfg := &Config{
		Port:       os.Getenv("PORT"),
		GinMode:    os.Getenv("GIN_MODE"),
		DBUser:     os.Getenv("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     os.Getenv("DB_HOST"),
		DBName:     getEnvDefault("DB_NAME", "hafilati"),
		BucketName: os.Getenv("STORAGE_BUCKET"),
	}
	if origins := os.Getenv("FE_ORIGINS"); origins != "" {
		cfg.FEOrigins = strings.Split(origins, ";")
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}
	if cfg.DBUser == "" || cfg.DBHost == "" {
		return nil, fmt.Errorf("$DB_USER and $DB_HOST must be set")
	}
	return cfg, nil
}

func getEnvDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
