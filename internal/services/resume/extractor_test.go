package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_ResumeSentence(t *testing.T) {
	p := Extract("I have 3 years experience in React and Node.js, based in Bangalore, B.Tech")

	assert.Subset(t, p.Skills, []string{"react", "node.js"})
	assert.Equal(t, "bangalore", p.Location)
	assert.Equal(t, 3, p.Experience)
	assert.Equal(t, "b.tech", p.Education)
}

func TestExtract_Defaults(t *testing.T) {
	p := Extract("")

	assert.NotNil(t, p.Skills)
	assert.Empty(t, p.Skills)
	assert.Equal(t, DefaultLocation, p.Location)
	assert.Equal(t, DefaultEducation, p.Education)
	assert.Zero(t, p.Experience)
}

func TestExtract_SkillsFollowVocabularyOrder(t *testing.T) {
	p := Extract("SQL, Docker and Python")

	assert.Equal(t, []string{"python", "sql", "docker"}, p.Skills)
}

func TestExtract_FirstLocationInListWins(t *testing.T) {
	// pune appears first in the text but delhi comes first in the list
	p := Extract("Pune office, relocating to Delhi")

	assert.Equal(t, "delhi", p.Location)
}

func TestExtract_ExperiencePatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"years suffix", "5 yrs of backend work", 5},
		{"experience prefix", "Experience: worked 2 internships", 2},
		{"no number", "fresh graduate", 0},
		{"first match wins", "10 years in java, experience since 2014", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).Experience)
		})
	}
}
