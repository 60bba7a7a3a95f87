// internal/services/otp/config.go
package otp

import (
	"time"

	"internship-recommender/internal/common/config"
)

const (
	DefaultTTL         = 5 * time.Minute
	DefaultMaxAttempts = 3
	DefaultRetention   = 10 * time.Minute
	CodeLength         = 6
)

type Config struct {
	TTL           time.Duration
	MaxAttempts   int
	Retention     time.Duration
	PurgeSchedule string
	RatePerMinute int
	RateBurst     int
	// MailConfigured is false while the relay still uses placeholder
	// credentials; failed deliveries then log the code for local use.
	MailConfigured bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		TTL:            time.Duration(cfg.OTP.TTL) * time.Second,
		MaxAttempts:    cfg.OTP.MaxAttempts,
		Retention:      time.Duration(cfg.OTP.Retention) * time.Second,
		PurgeSchedule:  cfg.OTP.PurgeSchedule,
		RatePerMinute:  cfg.OTP.RatePerMinute,
		RateBurst:      cfg.OTP.RateBurst,
		MailConfigured: cfg.Notifications.MailConfigured(),
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Retention < 0 {
		c.Retention = DefaultRetention
	}
	return c
}
