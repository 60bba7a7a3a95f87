// internal/services/notification/builder.go
package notification

import (
	"context"
	"fmt"
	"time"

	"internship-recommender/internal/common/aws"
	"internship-recommender/internal/common/config"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/observability"
)

// NewFromConfig builds the dispatcher for the configured mail provider, plus
// the SNS text channel when enabled.
func NewFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger, obs *observability.Observability) (*Dispatcher, error) {
	n := cfg.Notifications
	timeout := config.GetDuration(n.Timeout)

	var mailer Mailer
	switch n.Provider {
	case config.MailProviderSES:
		client, err := aws.NewSESClient(ctx, n.SES.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create ses client: %w", err)
		}
		mailer = NewSESMailer(client, n.SES.FromEmail, n.SMTP.SenderName)
	default:
		mailer = NewSMTPMailer(SMTPConfig{
			Host:       n.SMTP.Host,
			Port:       n.SMTP.Port,
			Username:   n.SMTP.Username,
			Password:   n.SMTP.Password,
			SenderName: n.SMTP.SenderName,
			UseTLS:     n.SMTP.UseTLS,
			Timeout:    timeout,
		})
	}

	var sms TextSender
	if n.SMS.Enabled {
		client, err := aws.NewSNSClient(ctx, n.SMS.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create sns client: %w", err)
		}
		sms = NewSMSSender(client)
	}

	return NewDispatcher(&Config{
		Timeout: timeout,
		OTPTTL:  time.Duration(cfg.OTP.TTL) * time.Second,
	}, mailer, sms, log, obs), nil
}
