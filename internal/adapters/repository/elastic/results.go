package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
)

// ResultRepository implements ports.ResultRepository on the results index.
type ResultRepository struct {
	store *Store
}

// NewResultRepository creates a result repository over the given store.
func NewResultRepository(store *Store) *ResultRepository {
	return &ResultRepository{store: store}
}

var _ ports.ResultRepository = (*ResultRepository)(nil)

// resultHits is the search response envelope for result documents.
type resultHits struct {
	Hits struct {
		Hits []struct {
			ID     string                `json:"_id"`
			Source domain.AnalysisRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Create persists one analysis record. A missing ID or timestamp is
// filled in here so callers can pass a bare record.
func (r *ResultRepository) Create(ctx context.Context, record domain.AnalysisRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(record)
	if err != nil {
		return err
	}

	res, err := r.store.es.Index(
		resultsIndex,
		bytes.NewReader(body),
		r.store.es.Index.WithContext(ctx),
		r.store.es.Index.WithDocumentID(record.ID),
	)
	if err != nil {
		return fmt.Errorf("elastic: indexing result failed: %w", err)
	}
	return closeChecked(res, "index result")
}

// GetBySession returns a session's results, newest first.
func (r *ResultRepository) GetBySession(ctx context.Context, sessionID string, limit, skip int) ([]domain.AnalysisRecord, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"session_id": sessionID,
			},
		},
		"sort": []map[string]interface{}{
			{"timestamp": map[string]interface{}{"order": "desc"}},
		},
		"from": skip,
		"size": limit,
	}

	var envelope resultHits
	if err := r.store.search(ctx, resultsIndex, query, &envelope); err != nil {
		return nil, err
	}
	return collectRecords(envelope), nil
}

// GetRecent returns results analyzed at or after the cutoff, newest first.
func (r *ResultRepository) GetRecent(ctx context.Context, since time.Time, limit int) ([]domain.AnalysisRecord, error) {
	query := map[string]interface{}{
		"query": rangeSince(since),
		"sort": []map[string]interface{}{
			{"timestamp": map[string]interface{}{"order": "desc"}},
		},
		"size": limit,
	}

	var envelope resultHits
	if err := r.store.search(ctx, resultsIndex, query, &envelope); err != nil {
		return nil, err
	}
	return collectRecords(envelope), nil
}

// SentimentDistribution counts results per sentiment label since the cutoff.
func (r *ResultRepository) SentimentDistribution(ctx context.Context, since time.Time) ([]domain.LabelCount, error) {
	query := map[string]interface{}{
		"size":  0,
		"query": rangeSince(since),
		"aggs": map[string]interface{}{
			"labels": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "label",
				},
			},
		},
	}

	var envelope struct {
		Aggregations struct {
			Labels struct {
				Buckets []struct {
					Key      string `json:"key"`
					DocCount int64  `json:"doc_count"`
				} `json:"buckets"`
			} `json:"labels"`
		} `json:"aggregations"`
	}
	if err := r.store.search(ctx, resultsIndex, query, &envelope); err != nil {
		return nil, err
	}

	counts := make([]domain.LabelCount, 0, len(envelope.Aggregations.Labels.Buckets))
	for _, bucket := range envelope.Aggregations.Labels.Buckets {
		counts = append(counts, domain.LabelCount{
			Label: bucket.Key,
			Count: bucket.DocCount,
		})
	}
	return counts, nil
}

// ModelPerformance aggregates request counts, processing time and
// confidence per model since the cutoff.
func (r *ResultRepository) ModelPerformance(ctx context.Context, since time.Time) ([]domain.ModelStats, error) {
	query := map[string]interface{}{
		"size":  0,
		"query": rangeSince(since),
		"aggs": map[string]interface{}{
			"models": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "model_name",
				},
				"aggs": map[string]interface{}{
					"avg_time": map[string]interface{}{
						"avg": map[string]interface{}{"field": "processing_time_ms"},
					},
					"avg_confidence": map[string]interface{}{
						"avg": map[string]interface{}{"field": "confidence"},
					},
				},
			},
		},
	}

	var envelope struct {
		Aggregations struct {
			Models struct {
				Buckets []struct {
					Key      string `json:"key"`
					DocCount int64  `json:"doc_count"`
					AvgTime  struct {
						Value float64 `json:"value"`
					} `json:"avg_time"`
					AvgConfidence struct {
						Value float64 `json:"value"`
					} `json:"avg_confidence"`
				} `json:"buckets"`
			} `json:"models"`
		} `json:"aggregations"`
	}
	if err := r.store.search(ctx, resultsIndex, query, &envelope); err != nil {
		return nil, err
	}

	stats := make([]domain.ModelStats, 0, len(envelope.Aggregations.Models.Buckets))
	for _, bucket := range envelope.Aggregations.Models.Buckets {
		stats = append(stats, domain.ModelStats{
			ModelName:           bucket.Key,
			TotalRequests:       bucket.DocCount,
			AvgProcessingTimeMs: bucket.AvgTime.Value,
			AvgConfidence:       bucket.AvgConfidence.Value,
		})
	}
	return stats, nil
}

// ConfidenceHistogram buckets result confidences into fixed-width intervals
// since the cutoff.
func (r *ResultRepository) ConfidenceHistogram(ctx context.Context, since time.Time, interval float64) ([]domain.ConfidenceBucket, error) {
	if interval <= 0 {
		interval = 0.1
	}

	query := map[string]interface{}{
		"size":  0,
		"query": rangeSince(since),
		"aggs": map[string]interface{}{
			"confidence": map[string]interface{}{
				"histogram": map[string]interface{}{
					"field":    "confidence",
					"interval": interval,
				},
			},
		},
	}

	var envelope struct {
		Aggregations struct {
			Confidence struct {
				Buckets []struct {
					Key      float64 `json:"key"`
					DocCount int64   `json:"doc_count"`
				} `json:"buckets"`
			} `json:"confidence"`
		} `json:"aggregations"`
	}
	if err := r.store.search(ctx, resultsIndex, query, &envelope); err != nil {
		return nil, err
	}

	buckets := make([]domain.ConfidenceBucket, 0, len(envelope.Aggregations.Confidence.Buckets))
	for _, bucket := range envelope.Aggregations.Confidence.Buckets {
		buckets = append(buckets, domain.ConfidenceBucket{
			From:  bucket.Key,
			To:    bucket.Key + interval,
			Count: bucket.DocCount,
		})
	}
	return buckets, nil
}

// Ping checks the backing store.
func (r *ResultRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func rangeSince(since time.Time) map[string]interface{} {
	return map[string]interface{}{
		"range": map[string]interface{}{
			"timestamp": map[string]interface{}{
				"gte": since.UTC().Format(time.RFC3339),
			},
		},
	}
}

func collectRecords(envelope resultHits) []domain.AnalysisRecord {
	records := make([]domain.AnalysisRecord, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		record := hit.Source
		if record.ID == "" {
			record.ID = hit.ID
		}
		records = append(records, record)
	}
	return records
}
