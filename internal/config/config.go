package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	BaseURL        string
	RequestTimeout time.Duration
	PageSize       int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:         getEnv("APP_ENV", "local"),
		BaseURL:        getEnv("HRMS_API_URL", "http://localhost:8000"),
		RequestTimeout: time.Duration(getEnvInt("HRMS_REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		PageSize:       getEnvInt("HRMS_PAGE_SIZE", 25),
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return cfg, fmt.Errorf("invalid HRMS_API_URL: %q", cfg.BaseURL)
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 25
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
