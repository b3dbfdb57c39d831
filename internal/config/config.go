// Package config reads storefront settings from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/storefront/internal/email"
	"github.com/example/storefront/internal/i18n"
)

var ErrMissingSecret = errors.New("SESSION_SECRET environment variable is required")

type Config struct {
	HTTPAddr          string
	DatabaseURL       string
	AuditLogPath      string
	SessionSecret     string
	DefaultLang       i18n.Lang
	SMTP              email.Config
	KafkaBrokers      []string
	KafkaTopic        string
	AdminPasswordHash string
	SeedCatalog       bool
	CookieSecure      bool
	LogLevel          string
}

// Load reads the configuration. Values already set in the environment win
// over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8000"),
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://data.db"),
		AuditLogPath:      getEnv("AUDIT_LOG_PATH", "orders.csv"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "storefront-orders"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if cfg.SessionSecret == "" {
		return nil, ErrMissingSecret
	}

	lang, ok := i18n.Parse(getEnv("DEFAULT_LANG", string(i18n.Arabic)))
	if !ok {
		return nil, fmt.Errorf("DEFAULT_LANG must be one of %v", i18n.Supported)
	}
	cfg.DefaultLang = lang

	var err error
	if cfg.SeedCatalog, err = getBool("SEED_CATALOG", true); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}

	username := os.Getenv("SMTP_USERNAME")
	cfg.SMTP = email.Config{
		Server:   os.Getenv("SMTP_SERVER"),
		Port:     getEnv("SMTP_PORT", "587"),
		Username: username,
		Password: os.Getenv("SMTP_PASSWORD"),
		Sender:   getEnv("SENDER_EMAIL", username),
		Vendor:   os.Getenv("VENDOR_EMAIL"),
	}
	return cfg, nil
}

// KafkaEnabled reports whether order events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
