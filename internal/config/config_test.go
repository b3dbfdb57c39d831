package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/i18n"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "sqlite://data.db", cfg.DatabaseURL)
	assert.Equal(t, "orders.csv", cfg.AuditLogPath)
	assert.Equal(t, i18n.Arabic, cfg.DefaultLang)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "storefront-orders", cfg.KafkaTopic)
	assert.True(t, cfg.SeedCatalog)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MissingSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DEFAULT_LANG", "EN")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "shop@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("SENDER_EMAIL", "")
	t.Setenv("SEED_CATALOG", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, i18n.English, cfg.DefaultLang)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "shop@example.com", cfg.SMTP.Sender)
	assert.True(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.SeedCatalog)
}

func TestLoad_InvalidValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", testSecret)

	t.Setenv("DEFAULT_LANG", "de")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DEFAULT_LANG", "fr")
	t.Setenv("COOKIE_SECURE", "maybe")
	_, err = Load()
	assert.Error(t, err)
}
