// internal/services/recommendation/config.go
package recommendation

import "internship-recommender/internal/common/config"

// Composite score weights. They sum to 1.0, which keeps scores in [0, 1].
const (
	WeightLocation  = 0.45
	WeightSector    = 0.35
	WeightSkill     = 0.15
	WeightEducation = 0.05
)

const (
	DefaultLocalLimit   = 5
	DefaultOverallLimit = 10

	MessageDatasetNotLoaded = "dataset not loaded"
)

type Config struct {
	LocalLimit   int
	OverallLimit int
}

func LoadConfig(cfg config.RecommendationConfig) *Config {
	c := &Config{
		LocalLimit:   cfg.LocalLimit,
		OverallLimit: cfg.OverallLimit,
	}
	if c.LocalLimit <= 0 {
		c.LocalLimit = DefaultLocalLimit
	}
	if c.OverallLimit <= 0 {
		c.OverallLimit = DefaultOverallLimit
	}
	return c
}
