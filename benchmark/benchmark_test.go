package benchmark

import (
	"strings"
	"testing"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/pkg/normalizer"
	"github.com/baditaflorin/go_sentiment_flow/pkg/social"
)

// generateText creates a text of the specified size by repeating a sample text
func generateText(size int) string {
	if size <= 0 {
		return ""
	}

	sample := "The quick brown fox jumps over the lazy dog. This sentence contains all letters of the English alphabet and is commonly used for testing text processing algorithms and systems."
	var sb strings.Builder
	sb.Grow(size)

	for sb.Len() < size {
		sb.WriteString(sample)
		sb.WriteString(" ")
	}

	if sb.Len() > size {
		return sb.String()[:size]
	}
	return sb.String()
}

// generateSocialText builds a social-media flavored text of roughly the
// given size.
func generateSocialText(size int) string {
	sample := "@alice omg this is amazing 🎉 check https://example.com #golang #opensource lol tbh "
	var sb strings.Builder
	sb.Grow(size)
	for sb.Len() < size {
		sb.WriteString(sample)
	}
	return sb.String()
}

// BenchmarkNormalizeLevels compares the pipeline cost per preprocessing
// level across input sizes.
func BenchmarkNormalizeLevels(b *testing.B) {
	sizes := map[string]string{
		"Small_100B":  generateText(100),
		"Medium_10KB": generateText(10000),
		"Large_100KB": generateText(100000),
	}
	levels := []domain.PreprocessingLevel{
		domain.LevelMinimal,
		domain.LevelStandard,
		domain.LevelAggressive,
		domain.LevelPreserve,
	}

	for _, level := range levels {
		n, err := normalizer.New(
			normalizer.WithLevel(level),
			normalizer.WithMaxLength(1<<20),
		)
		if err != nil {
			b.Fatalf("failed to create normalizer: %v", err)
		}

		for name, text := range sizes {
			b.Run(string(level)+"/"+name, func(b *testing.B) {
				b.SetBytes(int64(len(text)))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					_ = n.Normalize(text)
				}
			})
		}
	}
}

// BenchmarkNormalizeSocial measures the social-media branch: mention and
// hashtag substitution plus emoji handling.
func BenchmarkNormalizeSocial(b *testing.B) {
	text := generateSocialText(10000)

	n, err := normalizer.ForModel("cardiffnlp/twitter-roberta-base-sentiment",
		normalizer.WithMaxLength(1<<20),
	)
	if err != nil {
		b.Fatalf("failed to create normalizer: %v", err)
	}

	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.Normalize(text)
	}
}

// BenchmarkNormalizeBatch measures per-item overhead of batch processing.
func BenchmarkNormalizeBatch(b *testing.B) {
	n, err := normalizer.New()
	if err != nil {
		b.Fatalf("failed to create normalizer: %v", err)
	}

	batch := make([]string, 64)
	for i := range batch {
		batch[i] = generateText(500)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.NormalizeBatch(batch)
	}
}

// BenchmarkSocialDetection measures the social-media classifier heuristic.
func BenchmarkSocialDetection(b *testing.B) {
	texts := map[string]string{
		"Plain":  generateText(1000),
		"Social": generateSocialText(1000),
	}

	for name, text := range texts {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = social.LooksLikeSocialMedia(text)
			}
		})
	}
}
