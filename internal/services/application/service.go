// internal/services/application/service.go
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"internship-recommender/internal/catalog"
	"internship-recommender/internal/common/config"
	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/metrics"
	"internship-recommender/internal/common/observability"
	"internship-recommender/internal/common/validation"
	"internship-recommender/internal/models"

	"github.com/google/uuid"
)

const (
	idPrefix = "APP"

	// SubmittedAtLayout matches an ISO-8601 local timestamp with microseconds.
	SubmittedAtLayout = "2006-01-02T15:04:05.000000"

	MessageMissingConfirmationFields = "Missing required fields"
)

// requiredFields are checked in this order; the first absent one is reported.
var requiredFields = []string{"internshipId", "fullName", "email", "phone", "coverLetter"}

var confirmationFields = []string{"applicationId", "applicantEmail", "internshipTitle", "companyName"}

type Service struct {
	idScheme string
	logger   logger.Logger
	obs      *observability.Observability
	now      func() time.Time
	newUUID  func() string
}

func NewService(cfg config.ApplicationsConfig, log logger.Logger, obs *observability.Observability) *Service {
	scheme := cfg.IDScheme
	if scheme == "" {
		scheme = config.IDSchemeTimestamp
	}
	return &Service{
		idScheme: scheme,
		logger:   log.WithFields(map[string]interface{}{"component": "application"}),
		obs:      obs,
		now:      time.Now,
		newUUID:  uuid.NewString,
	}
}

// Submit validates a decoded submission body and builds the application
// record. Nothing is persisted.
func (s *Service) Submit(ctx context.Context, body map[string]interface{}) (app *models.Application, err error) {
	start := time.Now()
	defer func() { s.obs.Track(ctx, "submit_application", start, err) }()

	for _, field := range requiredFields {
		if !present(body[field]) {
			return nil, errors.NewRequiredFieldError(field)
		}
	}
	if err := checkSchema(submissionSchema, body); err != nil {
		return nil, err
	}

	var sub models.ApplicationSubmission
	if err := remarshal(numbersAsStrings(body, "internshipId"), &sub); err != nil {
		return nil, errors.NewMalformedRequestError(err)
	}

	now := s.now()
	app = &models.Application{
		ApplicationID:   s.applicationID(catalog.AnyString(sub.InternshipID), now),
		InternshipID:    sub.InternshipID,
		InternshipTitle: sub.InternshipTitle,
		CompanyName:     sub.CompanyName,
		ApplicantName:   sub.FullName,
		ApplicantEmail:  sub.Email,
		ApplicantPhone:  sub.Phone,
		CoverLetter:     sub.CoverLetter,
		PortfolioURL:    sub.PortfolioURL,
		LinkedinURL:     sub.LinkedinURL,
		SubmittedAt:     now.Format(SubmittedAtLayout),
		Status:          models.ApplicationStatusUnderReview,
	}
	if sub.Resume != nil {
		app.ResumeFileName = sub.Resume.Name
	}

	metrics.ApplicationsSubmitted.Inc()
	s.logger.Info("application submitted", map[string]interface{}{
		"applicationId": app.ApplicationID,
		"internshipId":  app.InternshipID,
		"email":         app.ApplicantEmail,
	})
	return app, nil
}

// applicationID is APP-<internship>-<suffix>. The timestamp suffix is the
// wall-clock HHMMSS and can collide within one second; the uuid scheme
// replaces it with random hex.
func (s *Service) applicationID(internshipID string, now time.Time) string {
	var suffix string
	switch s.idScheme {
	case config.IDSchemeUUID:
		suffix = strings.ToUpper(strings.ReplaceAll(s.newUUID(), "-", "")[:8])
	default:
		stamp := now.Format("20060102150405")
		suffix = stamp[len(stamp)-6:]
	}
	return fmt.Sprintf("%s-%s-%s", idPrefix, internshipID, suffix)
}

// Confirmation reads the confirmation fields of a body. With requireAll set,
// any absent mandatory field fails the call.
func (s *Service) Confirmation(body map[string]interface{}, requireAll bool) (*models.ConfirmationRequest, error) {
	if requireAll {
		for _, field := range confirmationFields {
			if !present(body[field]) {
				return nil, errors.NewValidationError(MessageMissingConfirmationFields)
			}
		}
	}
	if err := checkSchema(confirmationSchema, body); err != nil {
		return nil, err
	}

	var req models.ConfirmationRequest
	if err := remarshal(numbersAsStrings(body), &req); err != nil {
		return nil, errors.NewMalformedRequestError(err)
	}
	return &req, nil
}

func checkSchema(schema *validation.Schema, body map[string]interface{}) error {
	if body == nil {
		body = map[string]interface{}{}
	}
	res, err := schema.Validate(body)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !res.Valid {
		return errors.NewApplicationValidationFailedError(strings.Join(res.GetErrorMessages(), "; "))
	}
	return nil
}

// numbersAsStrings copies body with top-level numbers turned into their
// decimal text, except under the keep keys.
func numbersAsStrings(body map[string]interface{}, keep ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(body))
	for k, v := range body {
		switch v.(type) {
		case json.Number, float64:
			if !slices.Contains(keep, k) {
				v = catalog.AnyString(v)
			}
		}
		out[k] = v
	}
	return out
}

func remarshal(in map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// present mirrors JSON truthiness: null, "", 0, false and empty containers
// all count as absent.
func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}
