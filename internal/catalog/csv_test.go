package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"internship-recommender/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,name,org,skills,city,tags,pay,length,degree,about
1,Data Intern,Acme,"Python, SQL",Pune,"Tech,AI",10000,6 months,bachelor,Work with data
2,Web Intern,,React,Delhi,,NA,,,
3,Short Row,Beta
`

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "internships.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadCSV_HeaderReplacedAndCellsTrimmed(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1", rows[0].InternshipID)
	assert.Equal(t, "Python, SQL", rows[0].Skills)
	assert.Equal(t, "Tech,AI", rows[0].Category)
	assert.Equal(t, "Work with data", rows[0].Description)

	assert.Equal(t, "", rows[1].Company)
	assert.Equal(t, "", rows[1].Stipend, "NA is an absent value")

	assert.Equal(t, "Beta", rows[2].Company)
	assert.Equal(t, "", rows[2].Description)
}

func TestReadCSV_TooManyFieldsFails(t *testing.T) {
	body := "h1,h2\n1,a,b,c,d,e,f,g,h,i,extra\n"
	_, err := ReadCSV(context.Background(), strings.NewReader(body))
	assert.Error(t, err)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader("a,b,c\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoad_CSVSource(t *testing.T) {
	path := writeDataset(t, sampleCSV)

	table := Load(context.Background(), NewCSVSource(path), logger.NewTestLogger(t))
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, "csv", table.Source())
}

func TestLoad_MissingFileYieldsEmptyTable(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"))

	table := Load(context.Background(), src, logger.NewTestLogger(t))
	require.NotNil(t, table)
	assert.True(t, table.IsEmpty())
}

func TestLoad_MalformedFileYieldsEmptyTable(t *testing.T) {
	path := writeDataset(t, "id,title\n1,\"unterminated\n")

	table := Load(context.Background(), NewCSVSource(path), logger.NewTestLogger(t))
	assert.True(t, table.IsEmpty())
}
