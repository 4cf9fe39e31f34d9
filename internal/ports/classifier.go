package ports

import (
	"context"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
)

// Classifier is the external sentiment model collaborator. It receives
// preprocessed text and returns label/score pairs. Model loading, caching
// and versioning live behind this boundary.
type Classifier interface {
	Classify(ctx context.Context, model, text string) ([]domain.Score, error)
}
