// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top,
// then applies environment overrides. A missing config file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideFromEnv(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// setDefaults registers every key so AutomaticEnv can resolve it even when the
// yaml file does not mention it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "internship-recommender")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.read_timeout", 15000)
	v.SetDefault("server.write_timeout", 30000)
	v.SetDefault("server.shutdown_timeout", 10000)

	v.SetDefault("catalog.source", CatalogSourceCSV)
	v.SetDefault("catalog.dataset_path", "data/internships.csv")
	v.SetDefault("catalog.postgres_table", "internships")
	v.SetDefault("catalog.postgres_order_by", "internship_id")
	v.SetDefault("catalog.elasticsearch_index", "internships")
	v.SetDefault("catalog.max_rows", 10000)
	v.SetDefault("catalog.load_timeout", 30000)

	v.SetDefault("database.postgres.host", "")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.database", "")
	v.SetDefault("database.postgres.user", "")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.max_connections", 25)
	v.SetDefault("database.postgres.max_idle", 5)
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.elasticsearch.addresses", []string{})
	v.SetDefault("database.elasticsearch.username", "")
	v.SetDefault("database.elasticsearch.password", "")
	v.SetDefault("database.redis.address", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("recommendation.local_limit", 5)
	v.SetDefault("recommendation.overall_limit", 10)

	v.SetDefault("otp.store", OTPStoreMemory)
	v.SetDefault("otp.ttl", 300)
	v.SetDefault("otp.max_attempts", 3)
	v.SetDefault("otp.purge_schedule", "@every 1m")
	v.SetDefault("otp.rate_per_minute", 0)
	v.SetDefault("otp.rate_burst", 3)
	v.SetDefault("otp.redis_key_prefix", "otp:")
	v.SetDefault("otp.retention", 600)

	v.SetDefault("applications.id_scheme", IDSchemeTimestamp)

	v.SetDefault("notifications.provider", MailProviderSMTP)
	v.SetDefault("notifications.timeout", 10000)
	v.SetDefault("notifications.smtp.host", "")
	v.SetDefault("notifications.smtp.port", 0)
	v.SetDefault("notifications.smtp.username", "")
	v.SetDefault("notifications.smtp.password", "")
	v.SetDefault("notifications.smtp.sender_name", "")
	v.SetDefault("notifications.smtp.use_tls", true)
	v.SetDefault("notifications.ses.region", "")
	v.SetDefault("notifications.ses.from_email", "")
	v.SetDefault("notifications.sms.enabled", false)
	v.SetDefault("notifications.sms.region", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideFromEnv honours the plain variable names the service has always
// accepted. INTERNSHIP_DATASET_PATH always wins; the rest fill empty values.
func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("INTERNSHIP_DATASET_PATH"); val != "" {
		cfg.Catalog.DatasetPath = val
	}

	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}

	smtp := &cfg.Notifications.SMTP
	if smtp.Host == "" {
		smtp.Host = os.Getenv("SMTP_SERVER")
	}
	if smtp.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
			smtp.Port = port
		}
	}
	if smtp.Username == "" {
		smtp.Username = os.Getenv("SENDER_EMAIL")
	}
	if smtp.Password == "" {
		smtp.Password = os.Getenv("SENDER_PASSWORD")
	}
	if smtp.SenderName == "" {
		smtp.SenderName = os.Getenv("SENDER_NAME")
	}

	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = os.Getenv("REDIS_ADDRESS")
	}
	if cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = os.Getenv("DB_USER")
	}
	if cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = os.Getenv("DB_PASSWORD")
	}
}

// applyDefaults fills values that stay empty after file and env resolution.
func applyDefaults(cfg *Config) {
	smtp := &cfg.Notifications.SMTP
	if smtp.Host == "" {
		smtp.Host = PlaceholderSMTPHost
	}
	if smtp.Port == 0 {
		smtp.Port = 587
	}
	if smtp.Username == "" {
		smtp.Username = PlaceholderSenderEmail
	}
	if smtp.Password == "" {
		smtp.Password = PlaceholderSenderSecret
	}
	if smtp.SenderName == "" {
		smtp.SenderName = DefaultSenderName
	}
	if cfg.Notifications.SMS.Region == "" {
		cfg.Notifications.SMS.Region = cfg.Notifications.SES.Region
	}

	if cfg.Server.BasePath != "" {
		cfg.Server.BasePath = "/" + strings.Trim(cfg.Server.BasePath, "/")
		if cfg.Server.BasePath == "/" {
			cfg.Server.BasePath = ""
		}
	}
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		cfg.Server.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	switch cfg.Catalog.Source {
	case CatalogSourceCSV:
		if cfg.Catalog.DatasetPath == "" {
			return fmt.Errorf("catalog.dataset_path is required for the csv source")
		}
	case CatalogSourcePostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
		if cfg.Catalog.PostgresTable == "" {
			return fmt.Errorf("catalog.postgres_table is required")
		}
	case CatalogSourceElasticsearch:
		if len(cfg.Database.Elasticsearch.Addresses) == 0 {
			return fmt.Errorf("database.elasticsearch.addresses is required")
		}
		if cfg.Catalog.ElasticsearchIndex == "" {
			return fmt.Errorf("catalog.elasticsearch_index is required")
		}
	default:
		return fmt.Errorf("catalog.source %q is not supported", cfg.Catalog.Source)
	}

	if cfg.Recommendation.LocalLimit <= 0 || cfg.Recommendation.OverallLimit <= 0 {
		return fmt.Errorf("recommendation limits must be positive")
	}

	switch cfg.OTP.Store {
	case OTPStoreMemory:
	case OTPStoreRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis otp store")
		}
	default:
		return fmt.Errorf("otp.store %q is not supported", cfg.OTP.Store)
	}
	if cfg.OTP.TTL <= 0 {
		return fmt.Errorf("otp.ttl must be positive")
	}
	if cfg.OTP.MaxAttempts <= 0 {
		return fmt.Errorf("otp.max_attempts must be positive")
	}

	switch cfg.Applications.IDScheme {
	case IDSchemeTimestamp, IDSchemeUUID:
	default:
		return fmt.Errorf("applications.id_scheme %q is not supported", cfg.Applications.IDScheme)
	}

	switch cfg.Notifications.Provider {
	case MailProviderSMTP:
	case MailProviderSES:
		if cfg.Notifications.SES.Region == "" {
			return fmt.Errorf("notifications.ses.region is required for the ses provider")
		}
		if cfg.Notifications.SES.FromEmail == "" {
			return fmt.Errorf("notifications.ses.from_email is required for the ses provider")
		}
	default:
		return fmt.Errorf("notifications.provider %q is not supported", cfg.Notifications.Provider)
	}

	if cfg.Notifications.SMS.Enabled && cfg.Notifications.SMS.Region == "" {
		return fmt.Errorf("notifications.sms.region is required when sms is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
