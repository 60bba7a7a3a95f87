// internal/api/server.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"internship-recommender/internal/catalog"
	"internship-recommender/internal/common/config"
	commonerrors "internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/models"
	"internship-recommender/internal/services/application"
	"internship-recommender/internal/services/recommendation"
	"internship-recommender/internal/services/resume"
)

// OTPService is the verification flow behind /auth.
type OTPService interface {
	Send(ctx context.Context, email string) error
	Resend(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	TTL() time.Duration
}

// Notifier sends application confirmations and renders the downloadable copy.
type Notifier interface {
	SendApplicationConfirmation(ctx context.Context, req models.ConfirmationRequest) error
	ConfirmationDocument(req models.ConfirmationRequest) (string, error)
}

type Dependencies struct {
	Catalog        *catalog.Table
	Recommendation *recommendation.Service
	Resume         *resume.Service
	OTP            OTPService
	Applications   *application.Service
	Notifier       Notifier
	Logger         logger.Logger
}

type Server struct {
	config  *config.Config
	deps    Dependencies
	logger  logger.Logger
	errors  *commonerrors.ErrorHandler
	mux     *http.ServeMux
	handler http.Handler
	http    *http.Server
}

func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	log := deps.Logger.WithFields(map[string]interface{}{"component": "api"})
	s := &Server{
		config: cfg,
		deps:   deps,
		logger: log,
		errors: commonerrors.NewErrorHandler(log),
		mux:    http.NewServeMux(),
	}
	s.routes()
	s.handler = chain(s.mux,
		s.instrument,
		s.withRequestID,
		s.cors,
		s.recoverPanics,
	)
	return s
}

// Handler is the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.http = &http.Server{
		Addr:         s.config.Server.Addr(),
		Handler:      s.handler,
		ReadTimeout:  config.GetDuration(s.config.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(s.config.Server.WriteTimeout),
	}

	s.logger.Info("http server listening", map[string]interface{}{
		"addr":     s.http.Addr,
		"basePath": s.config.Server.BasePath,
	})
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
