// internal/catalog/table.go
package catalog

import (
	"strings"

	"internship-recommender/internal/models"
)

// Table is the in-memory catalog. It is never mutated after construction, so
// concurrent readers need no locking.
type Table struct {
	rows   []models.Listing
	byID   map[string]int
	source string
}

// NewTable copies rows into a new table and indexes the first row per
// canonical identifier.
func NewTable(source string, rows []models.Listing) *Table {
	cp := make([]models.Listing, len(rows))
	copy(cp, rows)

	byID := make(map[string]int, len(cp))
	for i, row := range cp {
		id := CanonicalID(row.InternshipID)
		if id == "" {
			continue
		}
		if _, seen := byID[id]; !seen {
			byID[id] = i
		}
	}
	return &Table{rows: cp, byID: byID, source: source}
}

// Empty returns a table with no rows.
func Empty(source string) *Table {
	return &Table{source: source}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Source names where the rows came from.
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Rows returns the rows in catalog order. Callers must not modify the slice.
func (t *Table) Rows() []models.Listing {
	if t == nil {
		return nil
	}
	return t.rows
}

// FindByID returns the first row whose identifier equals id. Stored
// identifiers are canonical while id is only trimmed, so "012" or "1.0" do
// not reach listing 1.
func (t *Table) FindByID(id string) (models.Listing, bool) {
	if t == nil {
		return models.Listing{}, false
	}
	i, ok := t.byID[strings.TrimSpace(id)]
	if !ok {
		return models.Listing{}, false
	}
	return t.rows[i], true
}

// Display shapes a row for output without a score.
func Display(l models.Listing) models.ScoredListing {
	return models.ScoredListing{
		ID:          OptionalInt(l.InternshipID),
		Title:       l.Title,
		Location:    l.Location,
		Skills:      List(l.Skills),
		Description: l.Description,
		Category:    FirstToken(l.Category, DefaultCategory),
		Company:     String(l.Company, DefaultCompany),
		Stipend:     Int(l.Stipend, DefaultStipend),
		Duration:    String(l.Duration, DefaultDuration),
	}
}

// DisplayAll shapes every row, unscored. Always non-nil.
func (t *Table) DisplayAll() []models.ScoredListing {
	out := make([]models.ScoredListing, 0, t.Len())
	for _, row := range t.Rows() {
		out = append(out, Display(row))
	}
	return out
}
