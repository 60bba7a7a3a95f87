// internal/common/config/config.go
package config

import "fmt"

// Placeholder mail credentials used when nothing is configured. They keep the
// service bootable in development but must never reach production.
const (
	PlaceholderSMTPHost     = "smtp.gmail.com"
	PlaceholderSenderEmail  = "your-email@gmail.com"
	PlaceholderSenderSecret = "your-app-password"
	DefaultSenderName       = "PM Internship Recommender"
)

// Catalog sources.
const (
	CatalogSourceCSV           = "csv"
	CatalogSourcePostgres      = "postgres"
	CatalogSourceElasticsearch = "elasticsearch"
)

// OTP stores.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
)

// Mail providers.
const (
	MailProviderSMTP = "smtp"
	MailProviderSES  = "ses"
)

// Application identifier schemes.
const (
	IDSchemeTimestamp = "timestamp"
	IDSchemeUUID      = "uuid"
)

// Config is the main application configuration struct.
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Server         ServerConfig         `mapstructure:"server"`
	Catalog        CatalogConfig        `mapstructure:"catalog"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	OTP            OTPConfig            `mapstructure:"otp"`
	Applications   ApplicationsConfig   `mapstructure:"applications"`
	Notifications  NotificationConfig   `mapstructure:"notifications"`
	Logging        LoggingConfig        `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port               int      `mapstructure:"port"`
	BasePath           string   `mapstructure:"base_path"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	MaxUploadBytes     int64    `mapstructure:"max_upload_bytes"`
	ReadTimeout        int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout       int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout    int      `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type CatalogConfig struct {
	Source             string `mapstructure:"source"`
	DatasetPath        string `mapstructure:"dataset_path"`
	PostgresTable      string `mapstructure:"postgres_table"`
	PostgresOrderBy    string `mapstructure:"postgres_order_by"`
	ElasticsearchIndex string `mapstructure:"elasticsearch_index"`
	MaxRows            int    `mapstructure:"max_rows"`
	LoadTimeout        int    `mapstructure:"load_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RecommendationConfig struct {
	LocalLimit   int `mapstructure:"local_limit"`
	OverallLimit int `mapstructure:"overall_limit"`
}

type OTPConfig struct {
	Store          string `mapstructure:"store"`
	TTL            int    `mapstructure:"ttl"` // seconds
	MaxAttempts    int    `mapstructure:"max_attempts"`
	PurgeSchedule  string `mapstructure:"purge_schedule"`
	RatePerMinute  int    `mapstructure:"rate_per_minute"`
	RateBurst      int    `mapstructure:"rate_burst"`
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`
	Retention      int    `mapstructure:"retention"` // seconds an expired record stays observable
}

type ApplicationsConfig struct {
	IDScheme string `mapstructure:"id_scheme"`
}

// NotificationConfig holds mail relay and SMS settings.
type NotificationConfig struct {
	Provider string `mapstructure:"provider"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds

	SMTP struct {
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		Username   string `mapstructure:"username"`
		Password   string `mapstructure:"password"`
		SenderName string `mapstructure:"sender_name"`
		UseTLS     bool   `mapstructure:"use_tls"`
	} `mapstructure:"smtp"`

	SES struct {
		Region    string `mapstructure:"region"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"ses"`

	SMS struct {
		Enabled bool   `mapstructure:"enabled"`
		Region  string `mapstructure:"region"`
	} `mapstructure:"sms"`
}

// SenderAddress is the envelope sender for outgoing mail.
func (n NotificationConfig) SenderAddress() string {
	if n.Provider == MailProviderSES && n.SES.FromEmail != "" {
		return n.SES.FromEmail
	}
	return n.SMTP.Username
}

// MailConfigured reports whether real mail credentials were supplied.
func (n NotificationConfig) MailConfigured() bool {
	if n.Provider == MailProviderSES {
		return n.SES.FromEmail != "" && n.SES.Region != ""
	}
	return n.SMTP.Username != "" && n.SMTP.Username != PlaceholderSenderEmail
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
