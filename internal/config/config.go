package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	JWTSecret        string
	ServerPort       string
	UploadDir        string
	PublicBaseURL    string
	EventRevertDelay time.Duration
}

func Load() *Config {
	revertSec, _ := strconv.Atoi(getEnv("EVENT_REVERT_SECONDS", "10"))
	if revertSec <= 0 {
		revertSec = 10
	}

	return &Config{
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "icebreaker"),
		JWTSecret:        getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		UploadDir:        getEnv("UPLOAD_DIR", "/uploads"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", ""),
		EventRevertDelay: time.Duration(revertSec) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
