// Package config loads runtime configuration from the environment with an
// optional YAML overlay file.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything main needs to wire the platform.
// NotifyWebhookURL accepts one or more comma-separated webhook endpoints.
type Config struct {
	HTTPAddr            string        `yaml:"http_addr"`
	JWTSecret           string        `yaml:"jwt_secret"`
	TokenTTL            time.Duration `yaml:"token_ttl"`
	DatabaseURL         string        `yaml:"database_url"`
	NotifyWebhookURL    string        `yaml:"notify_webhook_url"`
	DiffThreshold       float64       `yaml:"diff_threshold"`
	LowBalanceThreshold float64       `yaml:"low_balance_threshold"`
	ReadTimeout         time.Duration `yaml:"read_timeout"`
	WriteTimeout        time.Duration `yaml:"write_timeout"`
}

// Load reads env vars first, then applies the YAML file named by
// LNG_CONFIG when set. DatabaseURL and NotifyWebhookURL stay optional;
// JWTSecret does not.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:            getenvDefault("LNG_HTTP_ADDR", ":8080"),
		JWTSecret:           os.Getenv("LNG_JWT_SECRET"),
		TokenTTL:            getenvDuration("LNG_TOKEN_TTL", 12*time.Hour),
		DatabaseURL:         os.Getenv("LNG_DATABASE_URL"),
		NotifyWebhookURL:    os.Getenv("LNG_NOTIFY_WEBHOOK_URL"),
		DiffThreshold:       getenvFloatDefault("LNG_DIFF_THRESHOLD", 0.5),
		LowBalanceThreshold: getenvFloatDefault("LNG_LOW_BALANCE_THRESHOLD", 0),
		ReadTimeout:         getenvDuration("LNG_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:        getenvDuration("LNG_HTTP_WRITE_TIMEOUT", 30*time.Second),
	}

	if path := os.Getenv("LNG_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("config: LNG_JWT_SECRET required")
	}
	if cfg.DiffThreshold < 0 {
		return cfg, errors.New("config: diff threshold must not be negative")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
