// Package normalizer is the public facade over the text normalization
// pipeline. It configures a pipeline with functional options and exposes
// the Normalize / NormalizeBatch operations.
package normalizer

import (
	"context"

	"github.com/baditaflorin/go_sentiment_flow/internal/adapters/logger"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/models"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/normalize"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
	"github.com/baditaflorin/go_sentiment_flow/internal/warmup"
	"github.com/baditaflorin/l"
)

// TextNormalizer provides methods to normalize text for a classification
// model. Construct one per target model; it is safe for concurrent use.
type TextNormalizer struct {
	pipeline *normalize.Pipeline
	logger   ports.Logger
	warmed   bool
}

// Option defines a functional option for configuring a TextNormalizer.
type Option func(*textNormalizerConfig)

type textNormalizerConfig struct {
	Model        string
	MaxLength    int
	Level        domain.PreprocessingLevel
	Logger       ports.Logger
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithModel sets the target model identifier. Casing, multilinguality and
// social-media orientation are derived from it.
func WithModel(name string) Option {
	return func(cfg *textNormalizerConfig) {
		cfg.Model = name
	}
}

// WithMaxLength sets the maximum output character count.
func WithMaxLength(n int) Option {
	return func(cfg *textNormalizerConfig) {
		cfg.MaxLength = n
	}
}

// WithLevel sets the preprocessing level.
func WithLevel(level domain.PreprocessingLevel) Option {
	return func(cfg *textNormalizerConfig) {
		cfg.Level = level
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *textNormalizerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithWarmUp enables pipeline warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *textNormalizerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.Config) Option {
	return func(cfg *textNormalizerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a TextNormalizer with the provided functional options.
func New(opts ...Option) (*TextNormalizer, error) {
	config := &textNormalizerConfig{
		Model:        normalize.DefaultModel,
		MaxLength:    normalize.DefaultMaxLength,
		Level:        domain.LevelStandard,
		WarmUpConfig: warmup.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	pipeline, err := normalize.NewPipeline(
		normalize.NewConfig(config.Model, config.MaxLength, config.Level),
		config.Logger,
	)
	if err != nil {
		return nil, err
	}

	tn := &TextNormalizer{
		pipeline: pipeline,
		logger:   config.Logger,
	}

	if config.WarmUp {
		tn.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return tn, nil
}

// ForModel creates a TextNormalizer configured from the model registry:
// the model's registered preprocessing level and maximum length apply
// unless overridden by options.
func ForModel(name string, opts ...Option) (*TextNormalizer, error) {
	profile := models.ProfileFor(name)
	base := []Option{
		WithModel(profile.Name),
		WithMaxLength(profile.MaxLength),
		WithLevel(profile.Level),
	}
	return New(append(base, opts...)...)
}

// Normalize transforms one input string into a bounded, cleaned string
// for the configured model. It never fails; empty input yields "".
func (tn *TextNormalizer) Normalize(text string) string {
	return tn.pipeline.Normalize(text)
}

// NormalizeBatch applies Normalize to each element independently,
// preserving order and count.
func (tn *TextNormalizer) NormalizeBatch(texts []string) []string {
	return tn.pipeline.NormalizeBatch(texts)
}

// Config returns the underlying pipeline configuration.
func (tn *TextNormalizer) Config() normalize.Config {
	return tn.pipeline.Config()
}

// WarmUp exercises the pipeline to populate pools and JIT-warm the regex
// engines.
func (tn *TextNormalizer) WarmUp(ctx context.Context, config warmup.Config) {
	if tn.warmed {
		tn.logger.Debug("Pipeline already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(tn.logger, config)
	mgr.RegisterNormalizer(tn.pipeline)
	mgr.WarmUp(ctx)
	tn.warmed = true
}
