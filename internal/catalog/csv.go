// internal/catalog/csv.go
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"internship-recommender/internal/models"
)

// CSVSource reads the catalog from a delimited file. The first row is a
// header and is ignored; columns are taken positionally.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Load(ctx context.Context) ([]models.Listing, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.Path, err)
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV parses catalog rows from r. A row with more cells than the schema
// fails the whole read; short rows are padded with absent values.
func ReadCSV(ctx context.Context, r io.Reader) ([]models.Listing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header := true
	rows := []models.Listing{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}
		if header {
			header = false
			continue
		}

		if len(record) > len(models.ListingColumns) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("parse dataset: line %d has %d fields, expected %d",
				line, len(record), len(models.ListingColumns))
		}

		rows = append(rows, listingFromCells(record))
	}
	return rows, nil
}
