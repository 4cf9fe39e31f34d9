package ports

// Normalizer defines the interface for text normalization.
type Normalizer interface {
	// Normalize transforms one raw input string into a cleaned string
	// bounded by the configured maximum length. It never fails; invalid
	// or empty input yields "".
	Normalize(text string) string

	// NormalizeBatch applies Normalize to each element independently,
	// preserving order and count.
	NormalizeBatch(texts []string) []string
}
