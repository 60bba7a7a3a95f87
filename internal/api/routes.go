// internal/api/routes.go
package api

import "github.com/prometheus/client_golang/prometheus/promhttp"

// endpointPaths are listed by /health, relative to the base path.
var endpointPaths = []string{
	"/health",
	"/upload-resume",
	"/recommend",
	"/internships",
	"/internships/<id>",
	"/internships/<id>/apply",
	"/applications",
	"/applications/send-confirmation",
	"/applications/download-confirmation",
	"/auth/send-otp",
	"/auth/verify-otp",
	"/auth/resend-otp",
}

func (s *Server) routes() {
	base := s.config.Server.BasePath

	s.mux.HandleFunc("GET "+base+"/health", s.handleHealth)
	s.mux.HandleFunc("POST "+base+"/upload-resume", s.handleUploadResume)
	s.mux.HandleFunc("POST "+base+"/recommend", s.handleRecommend)

	s.mux.HandleFunc("GET "+base+"/internships", s.handleListInternships)
	s.mux.HandleFunc("GET "+base+"/internships/{id}", s.handleGetInternship)
	s.mux.HandleFunc("POST "+base+"/internships/{id}/apply", s.handleApply)

	s.mux.HandleFunc("POST "+base+"/applications", s.handleSubmitApplication)
	s.mux.HandleFunc("POST "+base+"/applications/send-confirmation", s.handleSendConfirmation)
	s.mux.HandleFunc("POST "+base+"/applications/download-confirmation", s.handleDownloadConfirmation)

	s.mux.HandleFunc("POST "+base+"/auth/send-otp", s.handleSendOTP)
	s.mux.HandleFunc("POST "+base+"/auth/verify-otp", s.handleVerifyOTP)
	s.mux.HandleFunc("POST "+base+"/auth/resend-otp", s.handleResendOTP)

	s.mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) endpoints() []string {
	out := make([]string, 0, len(endpointPaths))
	for _, p := range endpointPaths {
		out = append(out, s.config.Server.BasePath+p)
	}
	return out
}
