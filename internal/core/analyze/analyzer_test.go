package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/models"
)

// passthroughNormalizer lowercases nothing; analyzer tests care about
// result processing, not preprocessing.
type passthroughNormalizer struct{}

func (passthroughNormalizer) Normalize(text string) string { return text }
func (passthroughNormalizer) NormalizeBatch(texts []string) []string {
	out := make([]string, len(texts))
	copy(out, texts)
	return out
}

// stubClassifier returns canned scores, or an error for texts in failOn.
type stubClassifier struct {
	scores []domain.Score
	failOn map[string]bool
	calls  int
}

func (s *stubClassifier) Classify(_ context.Context, _ string, text string) ([]domain.Score, error) {
	s.calls++
	if s.failOn[text] {
		return nil, errors.New("inference unavailable")
	}
	return s.scores, nil
}

// memoryCache is a map-backed ports.ResultCache.
type memoryCache struct {
	entries map[string][]domain.Score
	gets    int
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]domain.Score)}
}

func (m *memoryCache) Get(_ context.Context, model, text string) ([]domain.Score, bool, error) {
	m.gets++
	scores, ok := m.entries[model+"|"+text]
	if ok {
		m.hits++
	}
	return scores, ok, nil
}

func (m *memoryCache) Set(_ context.Context, model, text string, scores []domain.Score) error {
	m.entries[model+"|"+text] = scores
	return nil
}

func TestAnalyzeTextBinaryBackfill(t *testing.T) {
	classifier := &stubClassifier{
		scores: []domain.Score{{Label: "POSITIVE", Score: 0.9731}},
	}
	a := New(models.ProfileFor(models.DefaultModel), passthroughNormalizer{}, classifier)

	result, err := a.AnalyzeText(context.Background(), "this library is wonderful")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.Valid)
	assert.Equal(t, "positive", result.Sentiment)
	assert.Equal(t, 0.9731, result.Confidence)
	// The missing negative class is backfilled as the complement.
	assert.Equal(t, 0.9731, result.Scores[domain.LabelPositive])
	assert.InDelta(t, 0.0269, result.Scores[domain.LabelNegative], 1e-9)
}

func TestAnalyzeTextStarMapping(t *testing.T) {
	classifier := &stubClassifier{
		scores: []domain.Score{
			{Label: "5 stars", Score: 0.61},
			{Label: "4 stars", Score: 0.25},
			{Label: "3 stars", Score: 0.1},
		},
	}
	a := New(models.ProfileFor("nlptown/bert-base-multilingual-uncased-sentiment"), passthroughNormalizer{}, classifier)

	result, err := a.AnalyzeText(context.Background(), "ce produit est excellent")
	require.NoError(t, err)

	assert.Equal(t, "positive", result.Sentiment)
	// 5 stars and 4 stars both map to positive; the map keeps the last write.
	assert.Contains(t, result.Scores, domain.LabelPositive)
	assert.Contains(t, result.Scores, domain.LabelNeutral)
}

func TestAnalyzeTextPicksHighestScore(t *testing.T) {
	classifier := &stubClassifier{
		scores: []domain.Score{
			{Label: "negative", Score: 0.2},
			{Label: "neutral", Score: 0.3},
			{Label: "positive", Score: 0.5},
		},
	}
	a := New(models.ProfileFor("cardiffnlp/twitter-roberta-base-sentiment"), passthroughNormalizer{}, classifier)

	result, err := a.AnalyzeText(context.Background(), "it works well enough")
	require.NoError(t, err)
	assert.Equal(t, "positive", result.Sentiment)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestAnalyzeTextValidation(t *testing.T) {
	classifier := &stubClassifier{
		scores: []domain.Score{{Label: "POSITIVE", Score: 0.999}},
	}
	a := New(models.ProfileFor(models.DefaultModel), passthroughNormalizer{}, classifier)

	// Extreme confidence on a very short text is implausible.
	result, err := a.AnalyzeText(context.Background(), "ok")
	require.NoError(t, err)
	assert.False(t, result.Valid)

	// The same confidence on a longer text is fine.
	result, err = a.AnalyzeText(context.Background(), "this is genuinely great")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	// Whitespace-only input is never valid.
	result, err = a.AnalyzeText(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestAnalyzeTextsPreservesOrderAndCount(t *testing.T) {
	classifier := &stubClassifier{
		scores: []domain.Score{{Label: "POSITIVE", Score: 0.8}},
		failOn: map[string]bool{"bad input": true},
	}
	a := New(models.ProfileFor(models.DefaultModel), passthroughNormalizer{}, classifier)

	texts := []string{"first text", "bad input", "third text"}
	results := a.AnalyzeTexts(context.Background(), texts, 2)

	require.Len(t, results, len(texts))
	assert.Equal(t, "first text", results[0].Text)
	assert.True(t, results[0].Success)

	assert.Equal(t, "bad input", results[1].Text)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)

	assert.Equal(t, "third text", results[2].Text)
	assert.True(t, results[2].Success)
}

func TestAnalyzeTextUsesCache(t *testing.T) {
	classifier := &stubClassifier{
		scores: []domain.Score{{Label: "POSITIVE", Score: 0.8}},
	}
	cache := newMemoryCache()
	a := New(models.ProfileFor(models.DefaultModel), passthroughNormalizer{}, classifier, WithCache(cache))

	_, err := a.AnalyzeText(context.Background(), "cached text")
	require.NoError(t, err)
	_, err = a.AnalyzeText(context.Background(), "cached text")
	require.NoError(t, err)

	assert.Equal(t, 1, classifier.calls, "second call should hit the cache")
	assert.Equal(t, 1, cache.hits)
}
