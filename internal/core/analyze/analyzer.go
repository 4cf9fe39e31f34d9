// Package analyze orchestrates the sentiment analysis flow: preprocess the
// text, hand it to the classifier collaborator, then normalize the model's
// output into the standard result shape.
package analyze

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/models"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
)

// DefaultBatchSize is the chunk size for batch analysis when the caller
// specifies none.
const DefaultBatchSize = 16

// Analyzer ties a normalizer and a classifier together for one model.
type Analyzer struct {
	profile    domain.ModelProfile
	normalizer ports.Normalizer
	classifier ports.Classifier
	cache      ports.ResultCache
	logger     ports.Logger
}

// Option defines a functional option for configuring the analyzer.
type Option func(*Analyzer)

// WithCache sets a classification result cache.
func WithCache(cache ports.ResultCache) Option {
	return func(a *Analyzer) {
		a.cache = cache
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger ports.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an analyzer for the given model profile. The normalizer must
// be configured for the same model.
func New(profile domain.ModelProfile, normalizer ports.Normalizer, classifier ports.Classifier, opts ...Option) *Analyzer {
	a := &Analyzer{
		profile:    profile,
		normalizer: normalizer,
		classifier: classifier,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model returns the analyzer's model name.
func (a *Analyzer) Model() string {
	return a.profile.Name
}

// AnalyzeText analyzes the sentiment of a single text input.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (domain.Analysis, error) {
	start := time.Now()

	preprocessed := a.normalizer.Normalize(text)

	scores, err := a.classify(ctx, preprocessed)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("Classification failed", "model", a.profile.Name, "error", err)
		}
		return domain.Analysis{Text: text, Model: a.profile.Name, Error: err.Error()}, err
	}

	result := a.processResult(text, preprocessed, scores)
	result.ProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000.0
	return result, nil
}

// AnalyzeTexts analyzes multiple texts in chunks of batchSize. The output
// preserves input order and count; a failed chunk yields error entries for
// its texts without failing the rest.
func (a *Analyzer) AnalyzeTexts(ctx context.Context, texts []string, batchSize int) []domain.Analysis {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	results := make([]domain.Analysis, 0, len(texts))
	for i := 0; i < len(texts); i += batchSize {
		end := i + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		for _, text := range texts[i:end] {
			result, err := a.AnalyzeText(ctx, text)
			if err != nil {
				results = append(results, domain.Analysis{
					Text:    text,
					Model:   a.profile.Name,
					Error:   err.Error(),
					Success: false,
				})
				continue
			}
			results = append(results, result)
		}
	}
	return results
}

func (a *Analyzer) classify(ctx context.Context, text string) ([]domain.Score, error) {
	if a.cache != nil {
		if scores, ok, err := a.cache.Get(ctx, a.profile.Name, text); err == nil && ok {
			return scores, nil
		} else if err != nil && a.logger != nil {
			a.logger.Warn("Cache lookup failed", "error", err)
		}
	}

	scores, err := a.classifier.Classify(ctx, a.profile.Name, text)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, a.profile.Name, text, scores); err != nil && a.logger != nil {
			a.logger.Warn("Cache store failed", "error", err)
		}
	}
	return scores, nil
}

// processResult normalizes raw classifier output into the standard format:
// normalized labels, rounded confidences, binary score backfill and a
// plausibility check.
func (a *Analyzer) processResult(original, preprocessed string, raw []domain.Score) domain.Analysis {
	result := domain.Analysis{
		Text:         original,
		Preprocessed: preprocessed,
		Model:        a.profile.Name,
		Success:      true,
		Scores:       make(map[string]float64, len(raw)),
		RawOutput:    raw,
	}

	if len(raw) == 0 {
		result.Valid = false
		return result
	}

	primary := raw[0]
	for _, s := range raw {
		if s.Score > primary.Score {
			primary = s
		}
	}
	result.Sentiment = models.NormalizeLabel(primary.Label)
	result.Confidence = round4(primary.Score)

	for _, s := range raw {
		result.Scores[models.NormalizeLabel(s.Label)] = round4(s.Score)
	}

	// Binary models report a single class; fill in the complement.
	if a.profile.Binary {
		if pos, ok := result.Scores[domain.LabelPositive]; ok {
			if _, ok := result.Scores[domain.LabelNegative]; !ok {
				result.Scores[domain.LabelNegative] = round4(1.0 - pos)
			}
		} else if neg, ok := result.Scores[domain.LabelNegative]; ok {
			result.Scores[domain.LabelPositive] = round4(1.0 - neg)
		}
	}

	result.Valid = a.validate(result)
	return result
}

// validate flags results that are unlikely to be meaningful: empty input,
// or extreme confidence on a very short text.
func (a *Analyzer) validate(result domain.Analysis) bool {
	if len(strings.TrimSpace(result.Text)) == 0 {
		return false
	}
	if (result.Confidence > 0.99 || result.Confidence < 0.01) && len(result.Text) < 5 {
		return false
	}
	return true
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
