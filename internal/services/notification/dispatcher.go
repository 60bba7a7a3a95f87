// internal/services/notification/dispatcher.go
package notification

import (
	"context"
	"fmt"
	"time"

	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/metrics"
	"internship-recommender/internal/common/observability"
	"internship-recommender/internal/models"
)

// TextSender delivers a short text message to a phone number.
type TextSender interface {
	Send(ctx context.Context, phone, message string) error
}

type Config struct {
	Timeout time.Duration
	OTPTTL  time.Duration
}

// Dispatcher renders notifications and hands them to the configured
// transports. It reports delivery errors but never retries.
type Dispatcher struct {
	config *Config
	mailer Mailer
	sms    TextSender
	logger logger.Logger
	obs    *observability.Observability
	now    func() time.Time
}

// NewDispatcher wires a dispatcher. sms may be nil.
func NewDispatcher(cfg *Config, mailer Mailer, sms TextSender, log logger.Logger, obs *observability.Observability) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 5 * time.Minute
	}
	return &Dispatcher{
		config: cfg,
		mailer: mailer,
		sms:    sms,
		logger: log.WithFields(map[string]interface{}{"component": "notification"}),
		obs:    obs,
		now:    time.Now,
	}
}

// SendOTP mails a verification code.
func (d *Dispatcher) SendOTP(ctx context.Context, email, code string) error {
	msg, err := RenderOTP(email, code, d.config.OTPTTL)
	if err != nil {
		return errors.NewInternalError(err)
	}
	return d.deliver(ctx, models.NotificationOTP, msg)
}

// SendApplicationConfirmation mails the confirmation and, when an SMS
// transport is wired and a phone number is known, texts a short notice.
// Only the email outcome is returned.
func (d *Dispatcher) SendApplicationConfirmation(ctx context.Context, req models.ConfirmationRequest) error {
	msg, err := RenderConfirmation(req, d.now())
	if err != nil {
		return errors.NewInternalError(err)
	}
	mailErr := d.deliver(ctx, models.NotificationApplicationConfirmation, msg)

	if d.sms != nil && req.ApplicantPhone != "" {
		d.text(ctx, req)
	}
	return mailErr
}

// ConfirmationDocument renders the downloadable confirmation page.
func (d *Dispatcher) ConfirmationDocument(req models.ConfirmationRequest) (string, error) {
	return RenderConfirmationDocument(req, d.now())
}

func (d *Dispatcher) deliver(ctx context.Context, kind models.NotificationKind, msg models.Email) (err error) {
	start := time.Now()
	defer func() { d.obs.Track(ctx, "notify_"+string(kind), start, err) }()

	if msg.Text == "" {
		msg.Text = plainText(msg.HTML)
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	if sendErr := d.mailer.Send(sendCtx, msg); sendErr != nil {
		metrics.NotificationsSent.WithLabelValues(d.mailer.Name(), string(kind), "failed").Inc()
		d.logger.Error("email delivery failed", map[string]interface{}{
			"kind":     kind,
			"to":       msg.To,
			"provider": d.mailer.Name(),
			"error":    sendErr.Error(),
		})
		return errors.NewNotificationSendFailedError(string(kind), sendErr)
	}

	metrics.NotificationsSent.WithLabelValues(d.mailer.Name(), string(kind), "sent").Inc()
	d.logger.Info("email sent", map[string]interface{}{
		"kind":     kind,
		"to":       msg.To,
		"provider": d.mailer.Name(),
	})
	return nil
}

func (d *Dispatcher) text(ctx context.Context, req models.ConfirmationRequest) {
	body := fmt.Sprintf("Your application %s for %s at %s has been received and is under review.",
		req.ApplicationID, req.InternshipTitle, req.CompanyName)

	sendCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	if err := d.sms.Send(sendCtx, req.ApplicantPhone, body); err != nil {
		metrics.NotificationsSent.WithLabelValues("sms", string(models.NotificationApplicationConfirmation), "failed").Inc()
		d.logger.WithError(err).Warn("sms delivery failed", map[string]interface{}{
			"applicationId": req.ApplicationID,
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("sms", string(models.NotificationApplicationConfirmation), "sent").Inc()
}
