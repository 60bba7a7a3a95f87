// internal/models/profile.go
package models

// CandidateProfile is derived per request, either from the recommend body or
// from resume text. Never persisted.
type CandidateProfile struct {
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	Sectors    []string `json:"sectors,omitempty"`
	Education  string   `json:"education"`
	Experience int      `json:"experience"`
}
