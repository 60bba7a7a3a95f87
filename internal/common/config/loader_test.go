package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearMailEnv(t *testing.T) {
	for _, key := range []string{
		"INTERNSHIP_DATASET_PATH", "PORT", "SMTP_SERVER", "SMTP_PORT",
		"SENDER_EMAIL", "SENDER_PASSWORD", "SENDER_NAME", "REDIS_ADDRESS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	clearMailEnv(t)
	path := writeConfig(t, "app:\n  name: recommender\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "recommender", cfg.App.Name)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, CatalogSourceCSV, cfg.Catalog.Source)
	assert.Equal(t, 5, cfg.Recommendation.LocalLimit)
	assert.Equal(t, 10, cfg.Recommendation.OverallLimit)
	assert.Equal(t, 300, cfg.OTP.TTL)
	assert.Equal(t, 3, cfg.OTP.MaxAttempts)
	assert.Zero(t, cfg.OTP.RatePerMinute)
	assert.Equal(t, IDSchemeTimestamp, cfg.Applications.IDScheme)

	assert.Equal(t, PlaceholderSMTPHost, cfg.Notifications.SMTP.Host)
	assert.Equal(t, 587, cfg.Notifications.SMTP.Port)
	assert.Equal(t, DefaultSenderName, cfg.Notifications.SMTP.SenderName)
	assert.False(t, cfg.Notifications.MailConfigured())
}

func TestLoadFromFile_DatasetPathEnvWins(t *testing.T) {
	clearMailEnv(t)
	t.Setenv("INTERNSHIP_DATASET_PATH", "/data/listings.csv")
	path := writeConfig(t, "catalog:\n  dataset_path: from-file.csv\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/listings.csv", cfg.Catalog.DatasetPath)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	clearMailEnv(t)
	t.Setenv("SENDER_EMAIL", "noreply@example.org")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("PORT", "8081")
	t.Setenv("OTP_MAX_ATTEMPTS", "4")
	path := writeConfig(t, "logging:\n  level: debug\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 2525, cfg.Notifications.SMTP.Port)
	assert.Equal(t, "noreply@example.org", cfg.Notifications.SenderAddress())
	assert.True(t, cfg.Notifications.MailConfigured())
	assert.Equal(t, 4, cfg.OTP.MaxAttempts)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	clearMailEnv(t)
	t.Setenv("TEST_SMTP_SECRET", "s3cret")
	path := writeConfig(t, "notifications:\n  smtp:\n    password: ${TEST_SMTP_SECRET}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Notifications.SMTP.Password)
}

func TestLoadFromFile_NormalizesBasePath(t *testing.T) {
	clearMailEnv(t)

	cfg, err := LoadFromFile(writeConfig(t, "server:\n  base_path: v1/\n"))
	require.NoError(t, err)
	assert.Equal(t, "/v1", cfg.Server.BasePath)

	cfg, err = LoadFromFile(writeConfig(t, "server:\n  base_path: /\n"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Server.BasePath)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown catalog source", "catalog:\n  source: mongo\n", "catalog.source"},
		{"postgres without host", "catalog:\n  source: postgres\n", "database.postgres.host"},
		{"elasticsearch without addresses", "catalog:\n  source: elasticsearch\n", "database.elasticsearch.addresses"},
		{"redis otp without address", "otp:\n  store: redis\n", "database.redis.address"},
		{"bad id scheme", "applications:\n  id_scheme: serial\n", "applications.id_scheme"},
		{"ses without region", "notifications:\n  provider: ses\n", "notifications.ses.region"},
		{"zero local limit", "recommendation:\n  local_limit: 0\n", "recommendation limits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearMailEnv(t)
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "catalog", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=catalog sslmode=disable", p.GetDSN())
}
