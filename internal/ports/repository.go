package ports

import (
	"context"
	"time"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
)

// ResultRepository persists analysis results and serves the history and
// analytics queries.
type ResultRepository interface {
	Create(ctx context.Context, record domain.AnalysisRecord) error
	GetBySession(ctx context.Context, sessionID string, limit, skip int) ([]domain.AnalysisRecord, error)
	GetRecent(ctx context.Context, since time.Time, limit int) ([]domain.AnalysisRecord, error)
	SentimentDistribution(ctx context.Context, since time.Time) ([]domain.LabelCount, error)
	ModelPerformance(ctx context.Context, since time.Time) ([]domain.ModelStats, error)
	ConfidenceHistogram(ctx context.Context, since time.Time, interval float64) ([]domain.ConfidenceBucket, error)
	Ping(ctx context.Context) error
}

// SessionRepository tracks per-client sessions.
type SessionRepository interface {
	GetOrCreate(ctx context.Context, sessionID, userAgent, ipAddress string) (domain.Session, error)
	UpdateActivity(ctx context.Context, sessionID, modelName string) error
	ActiveSessions(ctx context.Context, since time.Time, limit int) ([]domain.Session, error)
}
