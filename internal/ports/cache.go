package ports

import (
	"context"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
)

// ResultCache caches classifier output keyed by model and text digest.
// A miss is reported as (nil, false, nil); errors are reserved for
// transport failures.
type ResultCache interface {
	Get(ctx context.Context, model, text string) ([]domain.Score, bool, error)
	Set(ctx context.Context, model, text string, scores []domain.Score) error
}
