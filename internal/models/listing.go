// internal/models/listing.go
package models

// Listing is one catalog row. Cells are kept as trimmed raw strings; an empty
// string means the cell was absent. Typed views come from the catalog package.
type Listing struct {
	InternshipID string
	Title        string
	Company      string
	Skills       string
	Location     string
	Category     string
	Stipend      string
	Duration     string
	Education    string
	Description  string
}

// ListingColumns is the fixed catalog schema in storage order.
var ListingColumns = []string{
	"internship_id",
	"title",
	"company",
	"skills",
	"location",
	"category",
	"stipend",
	"duration",
	"education",
	"description",
}

// ScoredListing is the display shape of a listing. ID is nil when the
// identifier cell is not an integer; MatchScore is nil for unscored listings.
type ScoredListing struct {
	ID          *int     `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	MatchScore  *int     `json:"matchScore"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Company     string   `json:"company"`
	Stipend     int      `json:"stipend"`
	Duration    string   `json:"duration"`

	Score         float64 `json:"-"`
	LocationMatch bool    `json:"-"`
}

// Recommendations is the response of a recommend call.
type Recommendations struct {
	Local   []ScoredListing `json:"local"`
	Overall []ScoredListing `json:"overall"`
	Message string          `json:"message,omitempty"`
}
