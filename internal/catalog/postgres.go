// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"strings"

	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/models"

	"github.com/lib/pq"
)

// Querier is the subset of *sql.DB used by PostgresSource.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// PostgresSource reads the ten catalog columns from a table, each cast to
// text so the rows look exactly like the file-based catalog.
type PostgresSource struct {
	db      Querier
	table   string
	orderBy string
	limit   int
}

func NewPostgresSource(db Querier, table, orderBy string, limit int) *PostgresSource {
	return &PostgresSource{db: db, table: table, orderBy: orderBy, limit: limit}
}

func (s *PostgresSource) Name() string { return "postgres" }

// Query returns the statement issued by Load.
func (s *PostgresSource) Query() string {
	cols := make([]string, len(models.ListingColumns))
	for i, col := range models.ListingColumns {
		cols[i] = pq.QuoteIdentifier(col) + "::text"
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(quoteQualified(s.table))
	if s.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(quoteQualified(s.orderBy))
	}
	if s.limit > 0 {
		b.WriteString(" LIMIT $1")
	}
	return b.String()
}

func (s *PostgresSource) Load(ctx context.Context) ([]models.Listing, error) {
	var args []interface{}
	if s.limit > 0 {
		args = append(args, s.limit)
	}

	rows, err := s.db.QueryContext(ctx, s.Query(), args...)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("catalog_select", err)
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		var cells [10]sql.NullString
		dest := make([]interface{}, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.NewQueryExecutionFailedError("catalog_scan", err)
		}

		values := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				values[i] = strings.TrimSpace(c.String)
			}
		}
		out = append(out, listingFromCells(values))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("catalog_rows", err)
	}
	return out, nil
}

// quoteQualified quotes each dot-separated part, so "public.internships"
// becomes "public"."internships".
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
