// Package models holds the registry of known classifier models and the
// per-model normalization profiles derived from their identifiers.
package models

import (
	"sort"
	"strings"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
)

// DefaultModel is the model used when a request names none.
const DefaultModel = "distilbert-base-uncased-finetuned-sst-2-english"

// DefaultMaxLength bounds preprocessed text for models without a
// registered profile.
const DefaultMaxLength = 512

var registry = map[string]domain.ModelProfile{
	"distilbert-base-uncased-finetuned-sst-2-english": {
		Name:        "distilbert-base-uncased-finetuned-sst-2-english",
		Description: "General purpose binary sentiment analysis (positive/negative)",
		Level:       domain.LevelStandard,
		MaxLength:   512,
		Uncased:     true,
		Binary:      true,
		Labels:      []string{domain.LabelNegative, domain.LabelPositive},
		Languages:   []string{"english"},
	},
	"cardiffnlp/twitter-roberta-base-sentiment": {
		Name:        "cardiffnlp/twitter-roberta-base-sentiment",
		Description: "Social media focused sentiment analysis with 3 classes",
		Level:       domain.LevelPreserve,
		MaxLength:   512,
		SocialMedia: true,
		Labels:      []string{domain.LabelNegative, domain.LabelNeutral, domain.LabelPositive},
		Languages:   []string{"english"},
	},
	"nlptown/bert-base-multilingual-uncased-sentiment": {
		Name:         "nlptown/bert-base-multilingual-uncased-sentiment",
		Description:  "Multilingual sentiment analysis with 5-star rating",
		Level:        domain.LevelStandard,
		MaxLength:    512,
		Uncased:      true,
		Multilingual: true,
		Labels:       []string{"1 star", "2 stars", "3 stars", "4 stars", "5 stars"},
		Languages:    []string{"english", "french", "german", "dutch", "italian", "spanish"},
	},
}

// ProfileFor returns the registered profile for the model, or derives one
// from the identifier by substring matching. An unrecognized identifier is
// not an error; it falls back to cased, non-multilingual, non-social
// defaults at the standard level.
func ProfileFor(name string) domain.ModelProfile {
	if profile, ok := registry[name]; ok {
		return profile
	}
	return domain.ModelProfile{
		Name:         name,
		Level:        domain.LevelStandard,
		MaxLength:    DefaultMaxLength,
		Uncased:      strings.Contains(name, "uncased"),
		Multilingual: strings.Contains(name, "multilingual"),
		SocialMedia:  strings.Contains(name, "twitter") || strings.Contains(name, "social"),
		Labels:       []string{domain.LabelNegative, domain.LabelPositive},
	}
}

// All returns the registered profiles in a stable order, default model
// first.
func All() []domain.ModelProfile {
	names := make([]string, 0, len(registry))
	for name := range registry {
		if name != DefaultModel {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]domain.ModelProfile, 0, len(registry))
	out = append(out, registry[DefaultModel])
	for _, name := range names {
		out = append(out, registry[name])
	}
	return out
}

// NormalizeLabel maps model-specific output labels onto the standard
// sentiment labels. Star ratings collapse to negative/neutral/positive;
// everything else is lowercased.
func NormalizeLabel(label string) string {
	switch label {
	case "1 star", "2 stars":
		return domain.LabelNegative
	case "3 stars":
		return domain.LabelNeutral
	case "4 stars", "5 stars":
		return domain.LabelPositive
	}
	return strings.ToLower(label)
}
