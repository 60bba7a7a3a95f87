// internal/services/resume/extractor.go
package resume

import (
	"regexp"
	"strconv"
	"strings"

	"internship-recommender/internal/models"
)

const (
	DefaultLocation  = "remote"
	DefaultEducation = "bachelor"
)

// Output order follows these lists, not the order of appearance in the text.
var (
	skillVocabulary = []string{
		"javascript", "react", "node.js", "mongodb", "python", "java", "html", "css", "express",
		"machine learning", "ai", "data analysis", "sql", "nosql", "aws", "docker", "kubernetes",
		"git", "rest api", "project management", "analytical thinking", "communication", "leadership",
	}

	knownLocations = []string{
		"delhi", "bangalore", "hyderabad", "jaipur", "mumbai", "chennai", "pune",
		"kolkata", "ahmedabad", "gurgaon", "noida", "remote",
	}

	degrees = []string{
		"bachelor", "master", "phd", "b.tech", "m.tech", "b.e.", "m.e.",
		"bsc", "msc", "ba", "ma", "mbbs", "bca", "mca",
	}

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*(years?|yrs?)`),
		regexp.MustCompile(`experience.*?(\d+)`),
		regexp.MustCompile(`(\d+)\+?\s*years?`),
	}
)

// Extract derives a coarse profile from free text by substring lookups. It
// never fails; unrecognised input yields the defaults.
func Extract(text string) models.CandidateProfile {
	lower := strings.ToLower(text)

	skills := []string{}
	for _, s := range skillVocabulary {
		if strings.Contains(lower, s) {
			skills = append(skills, s)
		}
	}

	return models.CandidateProfile{
		Skills:     skills,
		Location:   firstContained(lower, knownLocations, DefaultLocation),
		Education:  firstContained(lower, degrees, DefaultEducation),
		Experience: experienceYears(lower),
	}
}

func firstContained(text string, candidates []string, def string) string {
	for _, c := range candidates {
		if strings.Contains(text, c) {
			return c
		}
	}
	return def
}

func experienceYears(text string) int {
	for _, re := range experiencePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}
