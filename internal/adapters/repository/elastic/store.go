// Package elastic implements the document-store repositories for analysis
// results and user sessions on Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
)

const (
	resultsIndex  = "sentiment_results"
	sessionsIndex = "user_sessions"
)

// Store wraps the Elasticsearch client shared by the repositories.
type Store struct {
	es     *elasticsearch.Client
	logger ports.Logger
}

// NewStore connects to Elasticsearch and verifies the cluster is reachable.
func NewStore(ctx context.Context, addresses []string, logger ports.Logger) (*Store, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
	})
	if err != nil {
		return nil, fmt.Errorf("elastic: client init failed: %w", err)
	}

	store := &Store{es: es, logger: logger}
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Ping checks cluster reachability.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.es.Ping(s.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elastic: ping failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elastic: ping returned status %s", res.Status())
	}
	return nil
}

// EnsureIndices creates the result and session indices with their mappings
// when they do not exist yet. Existing indices are left untouched.
func (s *Store) EnsureIndices(ctx context.Context) error {
	mappings := map[string]string{
		resultsIndex: `{
			"mappings": {
				"properties": {
					"session_id":        {"type": "keyword"},
					"text":              {"type": "text"},
					"model_name":        {"type": "keyword"},
					"label":             {"type": "keyword"},
					"confidence":        {"type": "float"},
					"text_length":       {"type": "integer"},
					"processing_time_ms": {"type": "float"},
					"timestamp":         {"type": "date"}
				}
			}
		}`,
		sessionsIndex: `{
			"mappings": {
				"properties": {
					"session_id":     {"type": "keyword"},
					"created_at":     {"type": "date"},
					"last_activity":  {"type": "date"},
					"total_analyses": {"type": "integer"},
					"models_used":    {"type": "keyword"}
				}
			}
		}`,
	}

	for index, mapping := range mappings {
		exists, err := s.indexExists(ctx, index)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		res, err := s.es.Indices.Create(
			index,
			s.es.Indices.Create.WithContext(ctx),
			s.es.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
		)
		if err != nil {
			return fmt.Errorf("elastic: creating index %s failed: %w", index, err)
		}
		if err := closeChecked(res, "create index "+index); err != nil {
			return err
		}
		s.logger.Info("Created index", "index", index)
	}
	return nil
}

func (s *Store) indexExists(ctx context.Context, index string) (bool, error) {
	res, err := s.es.Indices.Exists(
		[]string{index},
		s.es.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("elastic: index existence check failed: %w", err)
	}
	defer res.Body.Close()
	return res.StatusCode == 200, nil
}

// search executes a query against an index and decodes the response
// envelope into out.
func (s *Store) search(ctx context.Context, index string, query map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(query)
	if err != nil {
		return err
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(index),
		s.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("elastic: search failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elastic: search returned status %s", res.Status())
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func closeChecked(res *esapi.Response, op string) error {
	defer res.Body.Close()
	if res.IsError() {
		payload, _ := io.ReadAll(res.Body)
		return fmt.Errorf("elastic: %s returned status %s: %s", op, res.Status(), payload)
	}
	return nil
}
