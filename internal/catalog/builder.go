// internal/catalog/builder.go
package catalog

import (
	"context"
	"fmt"

	"internship-recommender/internal/common/config"
	"internship-recommender/internal/common/database"
	"internship-recommender/internal/common/errors"
)

// NewSourceFromConfig builds the configured Source. The returned close
// function releases any connection the source opened.
func NewSourceFromConfig(ctx context.Context, cfg *config.Config) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Catalog.Source {
	case config.CatalogSourceCSV, "":
		return NewCSVSource(cfg.Catalog.DatasetPath), noop, nil

	case config.CatalogSourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, noop, errors.NewDatabaseConnectionFailedError(err)
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return nil, noop, errors.NewDatabaseConnectionFailedError(err)
		}
		return NewPostgresSource(pg.DB, cfg.Catalog.PostgresTable, cfg.Catalog.PostgresOrderBy, cfg.Catalog.MaxRows), pg.Close, nil

	case config.CatalogSourceElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, noop, errors.NewElasticsearchConnectionFailedError(err)
		}
		return NewElasticsearchSource(es.Client, cfg.Catalog.ElasticsearchIndex, cfg.Catalog.MaxRows), noop, nil

	default:
		return nil, noop, errors.NewValidationError(fmt.Sprintf("unsupported catalog source %q", cfg.Catalog.Source))
	}
}
