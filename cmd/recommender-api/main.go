// cmd/recommender-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"internship-recommender/internal/api"
	"internship-recommender/internal/catalog"
	"internship-recommender/internal/common/config"
	"internship-recommender/internal/common/database"
	commonerrors "internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/observability"
	"internship-recommender/internal/services/application"
	"internship-recommender/internal/services/notification"
	"internship-recommender/internal/services/otp"
	"internship-recommender/internal/services/recommendation"
	"internship-recommender/internal/services/resume"

	"go.uber.org/zap"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return fmt.Errorf("%s failed: %w", operationName, err)
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// retryable reports whether another attempt could succeed. Plain errors
// are retried; classified ones only when their code is transient.
func retryable(err error) bool {
	var stdErr *commonerrors.StandardError
	if !errors.As(err, &stdErr) {
		return true
	}
	return commonerrors.IsRetryableErrorCode(stdErr.Code)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting internship recommender",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if !cfg.Notifications.MailConfigured() {
		zapLog.Warn("mail credentials are placeholders; outgoing mail will fail and OTP codes are logged. Do not run like this in production")
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Catalog ---
	loadCtx, cancelLoad := context.WithTimeout(ctx, config.GetDuration(cfg.Catalog.LoadTimeout))
	var (
		src       catalog.Source
		closeSrc  func() error
		sourceErr error
	)
	err = retryWithBackoff(func() error {
		src, closeSrc, sourceErr = catalog.NewSourceFromConfig(loadCtx, cfg)
		return sourceErr
	}, 3, time.Second, zapLog, "catalog source initialization")

	table := catalog.Empty(cfg.Catalog.Source)
	if err != nil {
		zapLog.Error("catalog source unavailable, serving empty catalog", zap.Error(err))
	} else {
		table = catalog.Load(loadCtx, src, log)
		if cerr := closeSrc(); cerr != nil {
			zapLog.Warn("failed to close catalog source", zap.Error(cerr))
		}
	}
	cancelLoad()

	// --- OTP store ---
	var store otp.Store = otp.NewMemoryStore()
	if cfg.OTP.Store == config.OTPStoreRedis {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()

		otpCfg := otp.LoadConfig(cfg)
		store = otp.NewRedisStore(rdb.Client, cfg.OTP.RedisKeyPrefix, otpCfg.Retention)
		zapLog.Info("Redis OTP store connected", zap.String("address", cfg.Database.Redis.Address))
	}

	// --- Services ---
	dispatcher, err := notification.NewFromConfig(ctx, cfg, log, obs)
	if err != nil {
		zapLog.Fatal("notification dispatcher init failed", zap.Error(err))
	}

	otpSvc := otp.NewService(otp.LoadConfig(cfg), store, dispatcher, log, obs)
	if err := otpSvc.StartPurge(ctx); err != nil {
		zapLog.Fatal("otp purge schedule invalid", zap.Error(err))
	}
	defer otpSvc.Stop()

	server := api.NewServer(cfg, api.Dependencies{
		Catalog:        table,
		Recommendation: recommendation.NewService(recommendation.LoadConfig(cfg.Recommendation), log, obs),
		Resume:         resume.NewService(log, obs),
		OTP:            otpSvc,
		Applications:   application.NewService(cfg.Applications, log, obs),
		Notifier:       dispatcher,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	// --- Graceful Shutdown ---
	select {
	case <-ctx.Done():
		zapLog.Info("Shutdown signal received, draining requests...")
	case err := <-errCh:
		if err != nil {
			zapLog.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during http shutdown", zap.Error(err))
	}

	zapLog.Info("Internship recommender stopped gracefully")
}
