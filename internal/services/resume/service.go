// internal/services/resume/service.go
package resume

import (
	"context"
	"time"

	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/metrics"
	"internship-recommender/internal/common/observability"
	"internship-recommender/internal/models"
)

type Service struct {
	logger logger.Logger
	obs    *observability.Observability
}

func NewService(log logger.Logger, obs *observability.Observability) *Service {
	return &Service{
		logger: log.WithFields(map[string]interface{}{"component": "resume"}),
		obs:    obs,
	}
}

// Parse turns an uploaded file into a profile. Unreadable files are logged
// and treated as empty text, which yields the default profile.
func (s *Service) Parse(ctx context.Context, filename string, data []byte) models.CandidateProfile {
	start := time.Now()
	format := DetectFormat(filename, data)

	text, err := ExtractText(format, data)
	if err != nil {
		err = errors.NewResumeUnreadableError(filename, err)
		s.logger.WithError(err).Warn("resume text extraction failed, using empty text", map[string]interface{}{
			"filename":  filename,
			"format":    format,
			"size":      len(data),
			"errorCode": string(errors.ErrCodeResumeUnreadable),
		})
		text = ""
	}

	metrics.ResumesParsed.WithLabelValues(format).Inc()
	s.obs.Track(ctx, "parse_resume", start, err)

	profile := Extract(text)
	s.logger.Debug("resume parsed", map[string]interface{}{
		"format":     format,
		"textLength": len(text),
		"skills":     len(profile.Skills),
	})
	return profile
}
