// internal/services/recommendation/service.go
package recommendation

import (
	"context"
	"sort"
	"time"

	"internship-recommender/internal/catalog"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/metrics"
	"internship-recommender/internal/common/observability"
	"internship-recommender/internal/models"
)

const component = "recommendation"

type Service struct {
	config *Config
	logger logger.Logger
	obs    *observability.Observability
}

func NewService(cfg *Config, log logger.Logger, obs *observability.Observability) *Service {
	if cfg == nil {
		cfg = &Config{LocalLimit: DefaultLocalLimit, OverallLimit: DefaultOverallLimit}
	}
	return &Service{
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": component}),
		obs:    obs,
	}
}

// Recommend ranks the catalog for a profile. An empty catalog is not an
// error: both lists come back empty with an advisory message.
func (s *Service) Recommend(ctx context.Context, profile models.CandidateProfile, table *catalog.Table) models.Recommendations {
	start := time.Now()

	if table.IsEmpty() {
		metrics.RecommendationsServed.WithLabelValues("empty_catalog").Inc()
		s.obs.Track(ctx, "recommend", start, nil)
		return models.Recommendations{
			Local:   []models.ScoredListing{},
			Overall: []models.ScoredListing{},
			Message: MessageDatasetNotLoaded,
		}
	}

	local, overall := Recommend(profile, table, s.config.LocalLimit, s.config.OverallLimit)

	metrics.RecommendationsServed.WithLabelValues("ok").Inc()
	s.obs.Track(ctx, "recommend", start, nil)

	duration := time.Since(start).Milliseconds()
	s.logger.Debug("recommendations computed", map[string]interface{}{
		"catalogRows":  table.Len(),
		"localCount":   len(local),
		"overallCount": len(overall),
		"durationMs":   duration,
	})
	if duration > 500 {
		s.logger.Warn("recommendation exceeded 500ms", map[string]interface{}{
			"durationMs":  duration,
			"catalogRows": table.Len(),
		})
	}

	return models.Recommendations{Local: local, Overall: overall}
}

// Recommend scores every row once and returns the location-matched subset
// and the full set, each sorted by descending score with catalog order
// breaking ties, truncated to its limit.
func Recommend(profile models.CandidateProfile, table *catalog.Table, localLimit, overallLimit int) (local, overall []models.ScoredListing) {
	rows := table.Rows()

	scored := make([]models.ScoredListing, 0, len(rows))
	for _, row := range rows {
		b := Score(row, profile)
		out := shape(row, table)
		pct := Percent(b.Score)
		out.MatchScore = &pct
		out.Score = b.Score
		out.LocationMatch = b.LocationMatch
		scored = append(scored, out)
	}

	local = make([]models.ScoredListing, 0)
	for _, item := range scored {
		if item.LocationMatch {
			local = append(local, item)
		}
	}
	overall = scored

	sortByScore(local)
	sortByScore(overall)

	return truncate(local, localLimit), truncate(overall, overallLimit)
}

// shape builds the display entry. Company, stipend and duration are resolved
// from the first catalog row sharing the identifier.
func shape(row models.Listing, table *catalog.Table) models.ScoredListing {
	out := catalog.Display(row)
	if ref, ok := table.FindByID(row.InternshipID); ok {
		out.Company = catalog.String(ref.Company, catalog.DefaultCompany)
		out.Stipend = catalog.Int(ref.Stipend, catalog.DefaultStipend)
		out.Duration = catalog.String(ref.Duration, catalog.DefaultDuration)
	}
	return out
}

func sortByScore(items []models.ScoredListing) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

func truncate(items []models.ScoredListing, limit int) []models.ScoredListing {
	if limit < 0 {
		limit = 0
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
