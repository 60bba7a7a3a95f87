// internal/services/otp/service.go
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/metrics"
	"internship-recommender/internal/common/observability"
	"internship-recommender/internal/models"

	"github.com/robfig/cron/v3"
)

// CodeSender delivers a freshly issued code to its owner.
type CodeSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

type Service struct {
	config   *Config
	store    Store
	sender   CodeSender
	logger   logger.Logger
	obs      *observability.Observability
	throttle *throttle
	cron     *cron.Cron

	now      func() time.Time
	generate func() (string, error)
}

type Option func(*Service)

type clientKey struct{}

// WithClient tags ctx with the caller's network address. Send and Resend
// throttle per client when a rate is configured; untagged calls are never
// throttled.
func WithClient(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, clientKey{}, addr)
}

func clientFrom(ctx context.Context) string {
	addr, _ := ctx.Value(clientKey{}).(string)
	return addr
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCodeGenerator replaces the random code source.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.generate = gen }
}

func NewService(cfg *Config, store Store, sender CodeSender, log logger.Logger, obs *observability.Observability, opts ...Option) *Service {
	s := &Service{
		config:   cfg,
		store:    store,
		sender:   sender,
		logger:   log.WithFields(map[string]interface{}{"component": "otp"}),
		obs:      obs,
		throttle: newThrottle(cfg.RatePerMinute, cfg.RateBurst),
		now:      time.Now,
		generate: GenerateCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL is the lifetime of an issued code.
func (s *Service) TTL() time.Duration {
	return s.config.TTL
}

// Send issues a new code for email, replacing any previous record and its
// attempt count, then hands it to the sender. Delivery failures are logged
// and do not fail the call.
func (s *Service) Send(ctx context.Context, email string) error {
	return s.issue(ctx, email, "send")
}

// Resend behaves exactly like Send.
func (s *Service) Resend(ctx context.Context, email string) error {
	return s.issue(ctx, email, "resend")
}

func (s *Service) issue(ctx context.Context, email, operation string) (err error) {
	start := s.now()
	defer func() { s.obs.Track(ctx, "otp_"+operation, start, err) }()

	if email == "" {
		return errors.NewRequiredFieldError("Email")
	}
	if client := clientFrom(ctx); client != "" && !s.throttle.allow(client, start) {
		metrics.OTPEvents.WithLabelValues("throttled").Inc()
		s.logger.Warn("otp request throttled", map[string]interface{}{
			"client":    client,
			"email":     email,
			"operation": operation,
		})
		return errors.NewRateLimitedError(client)
	}

	code, err := s.generate()
	if err != nil {
		return errors.NewInternalError(fmt.Errorf("failed to generate otp: %w", err))
	}

	record := models.OTPRecord{
		Code:      code,
		ExpiresAt: start.Add(s.config.TTL),
		Attempts:  0,
	}
	if err := s.store.Put(ctx, email, record); err != nil {
		return errors.NewOTPStoreFailedError(err)
	}
	metrics.OTPEvents.WithLabelValues("issued").Inc()

	s.deliver(ctx, email, code, operation)
	return nil
}

func (s *Service) deliver(ctx context.Context, email, code, operation string) {
	if s.sender == nil {
		return
	}
	err := s.sender.SendOTP(ctx, email, code)
	if err == nil {
		s.logger.Info("otp delivered", map[string]interface{}{"email": email, "operation": operation})
		return
	}

	fields := map[string]interface{}{
		"email":     email,
		"operation": operation,
	}
	if !s.config.MailConfigured {
		// development fallback so the flow can be completed without a relay
		fields["otp"] = code
	}
	s.logger.WithError(err).Warn("otp delivery failed", fields)
}

// Verify checks code against the record for email. Success, expiry and
// exhaustion all remove the record; a wrong code consumes one attempt.
func (s *Service) Verify(ctx context.Context, email, code string) (err error) {
	start := s.now()
	defer func() { s.obs.Track(ctx, "otp_verify", start, err) }()

	if email == "" || code == "" {
		return errors.NewValidationError("Email and OTP are required")
	}

	result, err := s.store.Verify(ctx, email, code, start, s.config.MaxAttempts)
	if err != nil {
		return errors.NewOTPStoreFailedError(err)
	}
	metrics.OTPEvents.WithLabelValues(result.Outcome.String()).Inc()

	switch result.Outcome {
	case OutcomeVerified:
		s.logger.Info("otp verified", map[string]interface{}{"email": email})
		return nil
	case OutcomeNotFound:
		return errors.NewOTPNotFoundError()
	case OutcomeExpired:
		return errors.NewOTPExpiredError()
	case OutcomeTooManyAttempts:
		return errors.NewOTPAttemptsExceededError()
	case OutcomeInvalid:
		return errors.NewOTPInvalidError(result.Remaining)
	default:
		return errors.NewInternalError(fmt.Errorf("unknown otp outcome %d", result.Outcome))
	}
}

// Purge removes records past their retention window and forgets idle
// throttle buckets.
func (s *Service) Purge(ctx context.Context) {
	now := s.now()
	n, err := s.store.Purge(ctx, now, s.config.Retention)
	if err != nil {
		s.logger.WithError(err).Warn("otp purge failed", nil)
		return
	}
	idle := s.throttle.prune(now, 10*time.Minute)
	if n > 0 || idle > 0 {
		s.logger.Debug("otp purge completed", map[string]interface{}{
			"records":  n,
			"throttle": idle,
		})
	}
}

// StartPurge schedules Purge on the configured cron schedule.
func (s *Service) StartPurge(ctx context.Context) error {
	if s.config.PurgeSchedule == "" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(s.config.PurgeSchedule, func() { s.Purge(ctx) }); err != nil {
		return fmt.Errorf("invalid otp purge schedule %q: %w", s.config.PurgeSchedule, err)
	}
	c.Start()
	s.cron = c

	s.logger.Info("otp purge scheduled", map[string]interface{}{"schedule": s.config.PurgeSchedule})
	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// GenerateCode returns CodeLength independent uniform decimal digits.
func GenerateCode() (string, error) {
	buf := make([]byte, CodeLength)
	ten := big.NewInt(10)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
