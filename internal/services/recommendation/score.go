// internal/services/recommendation/score.go
package recommendation

import (
	"math"
	"strings"

	"internship-recommender/internal/catalog"
	"internship-recommender/internal/models"
)

// Breakdown is the per-listing result of one scoring pass.
type Breakdown struct {
	LocationMatch  bool
	SectorRatio    float64
	SkillRatio     float64
	EducationMatch bool
	Score          float64
}

// Score computes the composite match of a listing against a profile.
func Score(listing models.Listing, profile models.CandidateProfile) Breakdown {
	var b Breakdown

	if listing.Location != "" {
		b.LocationMatch = catalog.Normalize(listing.Location) == catalog.Normalize(profile.Location)
	}
	b.SectorRatio = overlapRatio(tokenSet(profile.Sectors), catalog.TokenSet(listing.Category))
	b.SkillRatio = overlapRatio(tokenSet(profile.Skills), catalog.TokenSet(listing.Skills))

	// An empty candidate education is a substring of every requirement and so
	// always matches.
	b.EducationMatch = strings.Contains(
		catalog.Normalize(listing.Education),
		catalog.Normalize(profile.Education),
	)

	b.Score = WeightLocation*indicator(b.LocationMatch) +
		WeightSector*b.SectorRatio +
		WeightSkill*b.SkillRatio +
		WeightEducation*indicator(b.EducationMatch)
	return b
}

// Percent scales a score to the displayed integer, rounding half to even.
func Percent(score float64) int {
	return int(math.RoundToEven(score * 100))
}

// overlapRatio is |candidate ∩ listing| / |listing|, or 0 for an empty listing set.
func overlapRatio(candidate, listing map[string]struct{}) float64 {
	if len(listing) == 0 {
		return 0
	}
	shared := 0
	for tok := range candidate {
		if _, ok := listing[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(listing))
}

func tokenSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[catalog.Normalize(v)] = struct{}{}
	}
	return set
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
