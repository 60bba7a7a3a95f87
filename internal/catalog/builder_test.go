package catalog

import (
	"context"
	"testing"
	"time"

	"internship-recommender/internal/common/config"
	"internship-recommender/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderConfig(source string) *config.Config {
	cfg := &config.Config{}
	cfg.Catalog.Source = source
	cfg.Catalog.DatasetPath = "testdata/none.csv"
	cfg.Database.Postgres = config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Database: "catalog",
		User:     "reader",
		Password: "secret",
		SSLMode:  "disable",
	}
	cfg.Database.Elasticsearch.Addresses = []string{"http://[::1"}
	return cfg
}

func TestNewSourceFromConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("csv needs no connection", func(t *testing.T) {
		src, closeSrc, err := NewSourceFromConfig(ctx, builderConfig(config.CatalogSourceCSV))
		require.NoError(t, err)
		assert.Equal(t, "csv", src.Name())
		assert.NoError(t, closeSrc())
	})

	tests := []struct {
		name   string
		source string
		code   errors.ErrorCode
	}{
		{"unreachable postgres", config.CatalogSourcePostgres, errors.ErrCodeDatabaseConnectionFailed},
		{"bad elasticsearch address", config.CatalogSourceElasticsearch, errors.ErrCodeElasticsearchConnectionFailed},
		{"unknown source", "mongo", errors.ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, closeSrc, err := NewSourceFromConfig(ctx, builderConfig(tt.source))
			require.Error(t, err)
			assert.Nil(t, src)
			assert.NoError(t, closeSrc())
			assert.Equal(t, tt.code, errors.Normalize(err).Code)
		})
	}
}
