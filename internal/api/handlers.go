// internal/api/handlers.go
package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"internship-recommender/internal/catalog"
	commonerrors "internship-recommender/internal/common/errors"
	"internship-recommender/internal/services/notification"
	"internship-recommender/internal/services/otp"
	"internship-recommender/internal/services/recommendation"
)

const (
	messageApplicationSubmitted = "Application submitted successfully"
	messageConfirmationSent     = "Confirmation email sent successfully"
	messageConfirmationFailed   = "Application submitted, but confirmation email failed"
	messageOTPSent              = "OTP sent successfully"
	messageOTPResent            = "OTP resent successfully"
	messageOTPVerified          = "OTP verified successfully"
	messageFileRequired         = "file field is required"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"dataset_loaded":   !s.deps.Catalog.IsEmpty(),
		"rows":             s.deps.Catalog.Len(),
		"email_configured": s.config.Notifications.MailConfigured(),
		"endpoints":        s.endpoints(),
	})
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	limit := s.config.Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errors.Write(w, r, commonerrors.NewPayloadTooLargeError(tooLarge.Limit))
			return
		}
		s.errors.Write(w, r, commonerrors.NewValidationError(messageFileRequired))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errors.Write(w, r, commonerrors.NewValidationError(messageFileRequired))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.WithError(err).Warn("failed to read uploaded resume, using empty content", map[string]interface{}{
			"filename": header.Filename,
		})
		data = nil
	}

	profile := s.deps.Resume.Parse(r.Context(), header.Filename, data)
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	body := decodeLenient(w, r)
	profile := recommendation.ProfileFromBody(body)

	recs := s.deps.Recommendation.Recommend(r.Context(), profile, s.deps.Catalog)
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleListInternships(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Catalog.DisplayAll())
}

func (s *Server) handleGetInternship(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	row, ok := s.deps.Catalog.FindByID(id)
	if !ok {
		s.errors.Write(w, r, commonerrors.NewNotFoundError("internship", id))
		return
	}
	writeJSON(w, http.StatusOK, catalog.Display(row))
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "received",
		"internshipId": r.PathValue("id"),
		"application":  decodeLenient(w, r),
	})
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	app, err := s.deps.Applications.Submit(r.Context(), body)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":        messageApplicationSubmitted,
		"application":    app,
		"applicationId":  app.ApplicationID,
		"applicantName":  app.ApplicantName,
		"applicantEmail": app.ApplicantEmail,
		"applicantPhone": app.ApplicantPhone,
		"submittedAt":    app.SubmittedAt,
		"status":         app.Status,
	})
}

func (s *Server) handleSendConfirmation(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}
	req, err := s.deps.Applications.Confirmation(body, true)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	// Mail failure still answers 200; the application itself was accepted.
	if err := s.deps.Notifier.SendApplicationConfirmation(r.Context(), *req); err != nil {
		s.logger.WithError(err).Warn("confirmation email failed", map[string]interface{}{
			"applicationId": req.ApplicationID,
		})
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": messageConfirmationFailed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": messageConfirmationSent})
}

func (s *Server) handleDownloadConfirmation(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}
	req, err := s.deps.Applications.Confirmation(body, false)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	doc, err := s.deps.Notifier.ConfirmationDocument(*req)
	if err != nil {
		s.errors.Write(w, r, commonerrors.NewInternalError(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+notification.DocumentFilename(req.ApplicationID))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	s.issueOTP(w, r, s.deps.OTP.Send, messageOTPSent)
}

func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	s.issueOTP(w, r, s.deps.OTP.Resend, messageOTPResent)
}

func (s *Server) issueOTP(w http.ResponseWriter, r *http.Request, issue func(ctx context.Context, email string) error, message string) {
	body, err := decodeObject(w, r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}
	ctx := otp.WithClient(r.Context(), clientAddr(r))
	if err := issue(ctx, catalog.AnyString(body["email"])); err != nil {
		s.errors.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    message,
		"expires_in": int(s.deps.OTP.TTL().Seconds()),
	})
}

// clientAddr is the remote host without its port.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}
	email := catalog.AnyString(body["email"])
	code := catalog.AnyString(body["otp"])

	if err := s.deps.OTP.Verify(r.Context(), email, code); err != nil {
		s.errors.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  messageOTPVerified,
		"verified": true,
	})
}
