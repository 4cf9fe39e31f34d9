package normalize

import (
	"errors"
	"strings"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
)

// Default configuration values.
const (
	DefaultMaxLength = 512
	DefaultModel     = "distilbert-base-uncased-finetuned-sst-2-english"
)

// Config holds the configuration for one normalization pipeline. It is
// immutable after construction; the derived model traits are computed once
// from the model identifier.
type Config struct {
	// Model is the opaque identifier of the downstream classifier. It is
	// only used to derive the traits below.
	Model string
	// MaxLength is the upper bound on output character count.
	MaxLength int
	// Level controls how many transform stages run.
	Level domain.PreprocessingLevel

	// Traits derived from Model by substring matching.
	Uncased      bool
	Multilingual bool
	SocialMedia  bool
}

// NewConfig builds a Config for the given model, deriving the model traits
// from its identifier. Unknown identifiers simply yield cased,
// non-multilingual, non-social defaults.
func NewConfig(model string, maxLength int, level domain.PreprocessingLevel) Config {
	return Config{
		Model:        model,
		MaxLength:    maxLength,
		Level:        level,
		Uncased:      strings.Contains(model, "uncased"),
		Multilingual: strings.Contains(model, "multilingual"),
		SocialMedia:  strings.Contains(model, "twitter") || strings.Contains(model, "social"),
	}
}

// DefaultConfig returns the configuration for the default model.
func DefaultConfig() Config {
	return NewConfig(DefaultModel, DefaultMaxLength, domain.LevelStandard)
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxLength <= 0 {
		return errors.New("maxLength must be greater than 0")
	}
	if !c.Level.Valid() {
		return errors.New("unknown preprocessing level")
	}
	return nil
}
