// sentiment_flow.go
// Package sentimentflow prepares raw user text for sentiment classification
// models. It normalizes encoding damage, markup, contact patterns and
// social-media features into the bounded, cleaned form a model expects,
// and detects whether a text reads like social-media content so the right
// model can be routed to.
package sentimentflow

import (
	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/pkg/normalizer"
	"github.com/baditaflorin/go_sentiment_flow/pkg/social"
)

// Preprocessing levels, from least to most destructive. Preserve sits
// apart: it keeps casing and emoji for context-aware models.
const (
	LevelMinimal    = string(domain.LevelMinimal)
	LevelStandard   = string(domain.LevelStandard)
	LevelAggressive = string(domain.LevelAggressive)
	LevelPreserve   = string(domain.LevelPreserve)
)

// Normalizer cleans text for one target model. It is safe for concurrent
// use.
type Normalizer struct {
	inner *normalizer.TextNormalizer
}

// Option defines a functional option for configuring the Normalizer.
type Option func(*settings)

type settings struct {
	opts []normalizer.Option
}

// WithModel sets the target model identifier.
func WithModel(name string) Option {
	return func(s *settings) {
		s.opts = append(s.opts, normalizer.WithModel(name))
	}
}

// WithMaxLength sets the maximum output character count.
func WithMaxLength(n int) Option {
	return func(s *settings) {
		s.opts = append(s.opts, normalizer.WithMaxLength(n))
	}
}

// WithLevel sets the preprocessing level by name. Unknown names fall back
// to the standard level.
func WithLevel(level string) Option {
	return func(s *settings) {
		s.opts = append(s.opts, normalizer.WithLevel(domain.ParseLevel(level)))
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(s *settings) {
		s.opts = append(s.opts, normalizer.WithLogger(logger))
	}
}

// New creates a Normalizer with the provided functional options. If no
// logger is provided, a default logger is created.
func New(opts ...Option) (*Normalizer, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	inner, err := normalizer.New(s.opts...)
	if err != nil {
		return nil, err
	}
	return &Normalizer{inner: inner}, nil
}

// ForModel creates a Normalizer configured from the model registry: the
// model's registered preprocessing level and maximum length apply unless
// overridden by options.
func ForModel(name string, opts ...Option) (*Normalizer, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	inner, err := normalizer.ForModel(name, s.opts...)
	if err != nil {
		return nil, err
	}
	return &Normalizer{inner: inner}, nil
}

// Normalize transforms one input string into a bounded, cleaned string for
// the configured model. It never fails; empty input yields "".
func (n *Normalizer) Normalize(text string) string {
	return n.inner.Normalize(text)
}

// NormalizeBatch applies Normalize to each element independently,
// preserving order and count.
func (n *Normalizer) NormalizeBatch(texts []string) []string {
	return n.inner.NormalizeBatch(texts)
}

// SocialSignals summarizes the social-media features found in a text.
type SocialSignals struct {
	// IsSocialMedia reports whether the text reads like social-media
	// content overall.
	IsSocialMedia bool
	// Mentions are @handles without the @ prefix.
	Mentions []string
	// Hashtags are #tags without the # prefix.
	Hashtags []string
	// URLs found in the text.
	URLs []string
	// EmojiDensity is emoji runes over total runes.
	EmojiDensity float64
	// SlangCount is the number of slang term occurrences.
	SlangCount int
	// SlangDensity is slang occurrences over word count.
	SlangDensity float64
}

// DetectSocialSignals extracts the social-media features of a text in one
// pass.
func DetectSocialSignals(text string) SocialSignals {
	count, density := social.SlangDensity(text)
	return SocialSignals{
		IsSocialMedia: social.LooksLikeSocialMedia(text),
		Mentions:      social.ExtractMentions(text),
		Hashtags:      social.ExtractHashtags(text),
		URLs:          social.ExtractURLs(text),
		EmojiDensity:  social.EmojiDensity(text),
		SlangCount:    count,
		SlangDensity:  density,
	}
}

// IsSocialMediaText reports whether the text reads like social-media
// content.
func IsSocialMediaText(text string) bool {
	return social.LooksLikeSocialMedia(text)
}
