package catalog

import (
	"context"
	"errors"
	"testing"

	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSource_Query(t *testing.T) {
	src := NewPostgresSource(nil, "public.internships", "internship_id", 50)

	q := src.Query()
	assert.Contains(t, q, `"internship_id"::text`)
	assert.Contains(t, q, `"description"::text`)
	assert.Contains(t, q, `FROM "public"."internships"`)
	assert.Contains(t, q, `ORDER BY "internship_id"`)
	assert.Contains(t, q, "LIMIT $1")
}

func TestPostgresSource_Load(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	src := NewPostgresSource(db, "internships", "internship_id", 100)
	mock.ExpectQuery(src.Query()).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(models.ListingColumns).
			AddRow("1", "Data Intern", "Acme", "python,sql", " Pune ", "Tech,AI", "10000", "6 months", "bachelor", "desc").
			AddRow("2", "Ops Intern", nil, nil, "Delhi", nil, nil, nil, nil, nil))

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Pune", rows[0].Location)
	assert.Equal(t, "10000", rows[0].Stipend)
	assert.Equal(t, "", rows[1].Company)
	assert.Equal(t, "", rows[1].Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryErrorYieldsEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	src := NewPostgresSource(db, "internships", "", 0)
	mock.ExpectQuery(src.Query()).WillReturnError(errors.New("relation does not exist"))

	table := Load(context.Background(), src, logger.NewTestLogger(t))
	assert.True(t, table.IsEmpty())
	assert.Equal(t, "postgres", table.Source())
	assert.NoError(t, mock.ExpectationsWereMet())
}
