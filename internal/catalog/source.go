// internal/catalog/source.go
package catalog

import (
	"context"
	"strings"
	"time"

	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/metrics"
	"internship-recommender/internal/models"
)

// Source produces the raw catalog rows.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Listing, error)
}

// Load reads src into a Table. Any failure is logged and yields an empty
// table; callers treat an empty catalog as "dataset not loaded".
func Load(ctx context.Context, src Source, log logger.Logger) *Table {
	start := time.Now()

	rows, err := src.Load(ctx)
	if err != nil {
		stdErr := errors.NewCatalogLoadFailedError(src.Name(), err)
		log.Warn("catalog load failed, serving empty catalog", map[string]interface{}{
			"source":    src.Name(),
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		metrics.CatalogRows.WithLabelValues(src.Name()).Set(0)
		return Empty(src.Name())
	}

	table := NewTable(src.Name(), rows)
	metrics.CatalogRows.WithLabelValues(src.Name()).Set(float64(table.Len()))
	log.Info("catalog loaded", map[string]interface{}{
		"source":   src.Name(),
		"rows":     table.Len(),
		"duration": time.Since(start).String(),
	})
	return table
}

// Cell spellings that count as an absent value.
var naValues = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
	"None": {},
	"#N/A": {},
}

// listingFromCells maps cells in ListingColumns order onto a Listing.
// Cells are trimmed; missing trailing cells and naValues spellings are
// treated as absent whichever source produced them.
func listingFromCells(cells []string) models.Listing {
	get := func(i int) string {
		if i >= len(cells) {
			return ""
		}
		cell := strings.TrimSpace(cells[i])
		if _, na := naValues[cell]; na {
			return ""
		}
		return cell
	}
	return models.Listing{
		InternshipID: get(0),
		Title:        get(1),
		Company:      get(2),
		Skills:       get(3),
		Location:     get(4),
		Category:     get(5),
		Stipend:      get(6),
		Duration:     get(7),
		Education:    get(8),
		Description:  get(9),
	}
}
