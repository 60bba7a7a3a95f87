// internal/services/recommendation/profile.go
package recommendation

import (
	"internship-recommender/internal/catalog"
	"internship-recommender/internal/models"
)

// ProfileFromBody reads location, skills, sectors and education from a
// decoded JSON object. Missing or null keys take empty values.
func ProfileFromBody(body map[string]interface{}) models.CandidateProfile {
	return models.CandidateProfile{
		Location:  catalog.AnyString(body["location"]),
		Skills:    catalog.AnyStringList(body["skills"]),
		Sectors:   catalog.AnyStringList(body["sectors"]),
		Education: catalog.AnyString(body["education"]),
	}
}
