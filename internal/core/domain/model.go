package domain

import "time"

// PreprocessingLevel controls how many normalization stages run and how
// destructively.
type PreprocessingLevel string

const (
	// LevelMinimal applies only basic cleaning.
	LevelMinimal PreprocessingLevel = "minimal"
	// LevelStandard applies the standard pipeline for most models.
	LevelStandard PreprocessingLevel = "standard"
	// LevelAggressive applies maximum cleaning and normalization.
	LevelAggressive PreprocessingLevel = "aggressive"
	// LevelPreserve keeps most original features, for context-aware models.
	LevelPreserve PreprocessingLevel = "preserve"
)

// Valid reports whether the level is one of the known values.
func (p PreprocessingLevel) Valid() bool {
	switch p {
	case LevelMinimal, LevelStandard, LevelAggressive, LevelPreserve:
		return true
	}
	return false
}

// ParseLevel maps a string onto a PreprocessingLevel, falling back to
// LevelStandard for unknown values.
func ParseLevel(s string) PreprocessingLevel {
	lvl := PreprocessingLevel(s)
	if !lvl.Valid() {
		return LevelStandard
	}
	return lvl
}

// Standard sentiment labels. Model-specific outputs (star ratings, cased
// labels) are normalized onto these.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Score is a single label/confidence pair returned by a classifier.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ModelProfile describes a classifier model's normalization requirements
// and output shape.
type ModelProfile struct {
	Name         string
	Description  string
	Level        PreprocessingLevel
	MaxLength    int
	Uncased      bool
	Multilingual bool
	SocialMedia  bool
	// Binary marks two-class models whose missing complementary score is
	// backfilled as 1 - score.
	Binary    bool
	Labels    []string
	Languages []string
}

// Analysis is the outcome of classifying one text.
type Analysis struct {
	Text             string             `json:"text"`
	Preprocessed     string             `json:"-"`
	Model            string             `json:"model"`
	Sentiment        string             `json:"sentiment"`
	Confidence       float64            `json:"confidence"`
	Scores           map[string]float64 `json:"scores"`
	Valid            bool               `json:"valid"`
	Success          bool               `json:"success"`
	Error            string             `json:"error,omitempty"`
	ProcessingTimeMs float64            `json:"processing_time_ms"`
	RawOutput        []Score            `json:"raw_output,omitempty"`
}

// AnalysisRecord is the persisted form of an Analysis, attributed to a
// session.
type AnalysisRecord struct {
	ID               string             `json:"id"`
	SessionID        string             `json:"session_id"`
	Text             string             `json:"text"`
	ModelName        string             `json:"model_name"`
	Label            string             `json:"label"`
	Confidence       float64            `json:"confidence"`
	Scores           map[string]float64 `json:"scores"`
	TextLength       int                `json:"text_length"`
	ProcessingTimeMs float64            `json:"processing_time_ms"`
	Timestamp        time.Time          `json:"timestamp"`
	UserAgent        string             `json:"user_agent,omitempty"`
	IPAddress        string             `json:"ip_address,omitempty"`
}

// Session tracks per-client analysis activity.
type Session struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastActivity  time.Time `json:"last_activity"`
	TotalAnalyses int       `json:"total_analyses"`
	ModelsUsed    []string  `json:"models_used"`
	UserAgent     string    `json:"user_agent,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
}

// LabelCount is one bucket of a sentiment distribution aggregation.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ModelStats aggregates per-model usage figures.
type ModelStats struct {
	ModelName           string  `json:"model_name"`
	TotalRequests       int64   `json:"total_requests"`
	AvgProcessingTimeMs float64 `json:"avg_processing_time_ms"`
	AvgConfidence       float64 `json:"avg_confidence"`
}

// ConfidenceBucket is one bucket of a confidence histogram.
type ConfidenceBucket struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int64   `json:"count"`
}
