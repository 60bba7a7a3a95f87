// internal/catalog/elasticsearch.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const matchAllQuery = `{"query":{"match_all":{}},"sort":["_doc"]}`

// ElasticsearchSource reads listing documents from an index. Document fields
// are named after ListingColumns; scalar values are converted to strings.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
	size   int
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, size int) *ElasticsearchSource {
	return &ElasticsearchSource{client: client, index: index, size: size}
}

func (s *ElasticsearchSource) Name() string { return "elasticsearch" }

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source map[string]interface{} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSource) Load(ctx context.Context) ([]models.Listing, error) {
	opts := []func(*esapi.SearchRequest){
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(matchAllQuery)),
	}
	if s.size > 0 {
		opts = append(opts, s.client.Search.WithSize(s.size))
	}

	res, err := s.client.Search(opts...)
	if err != nil {
		return nil, errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, err)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("status %s", res.Status()))
	}

	var parsed searchResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("decode response: %w", err))
	}

	out := make([]models.Listing, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		cells := make([]string, len(models.ListingColumns))
		for i, col := range models.ListingColumns {
			cells[i] = sourceString(hit.Source[col])
		}
		out = append(out, listingFromCells(cells))
	}
	return out, nil
}

// sourceString flattens a _source value. Arrays are joined with commas so a
// keyword array of skills behaves like the delimited file cell.
func sourceString(v interface{}) string {
	if arr, ok := v.([]interface{}); ok {
		parts := make([]string, 0, len(arr))
		for _, item := range arr {
			parts = append(parts, AnyString(item))
		}
		return strings.Join(parts, ",")
	}
	return AnyString(v)
}
