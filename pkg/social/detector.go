// Package social provides pure helper functions that decide whether a text
// exhibits social-media characteristics (mentions, hashtags, emoji density,
// slang density) and extract those signals. It holds no state and performs
// no I/O; the normalization pipeline consults it to decide whether the
// social-media transforms should run.
package social

import (
	"regexp"
	"strings"
)

var (
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// Detection thresholds. A text whose emoji share exceeds EmojiDensityThreshold,
// or whose slang share exceeds SlangDensityThreshold, reads as social media
// even without mentions or hashtags.
const (
	EmojiDensityThreshold = 0.05
	SlangDensityThreshold = 0.15
)

// DefaultSlangTerms is the default list of common social-media abbreviations
// used for slang density, matched case-insensitively on word boundaries.
var DefaultSlangTerms = []string{
	"lol", "romfl", "brb", "btw", "idk",
	"omg", "imo", "ftw", "afaik", "afk",
	"ty", "thx", "tysm", "yolo", "fomo",
	"smh", "tbh", "fyi", "imho", "ttyl",
}

var defaultSlangPatterns = compileSlangPatterns(DefaultSlangTerms)

func compileSlangPatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}

// LooksLikeSocialMedia reports whether the text reads like social-media
// content. Mentions and hashtags are decisive on their own; otherwise high
// emoji density or high slang density tips the decision. An empty string is
// never social media.
func LooksLikeSocialMedia(text string) bool {
	if text == "" {
		return false
	}

	if mentionPattern.MatchString(text) || hashtagPattern.MatchString(text) {
		return true
	}

	if EmojiDensity(text) > EmojiDensityThreshold {
		return true
	}

	slangCount, slangDensity := SlangDensity(text)
	wordCount := len(strings.Fields(text))
	if slangDensity > SlangDensityThreshold || (slangCount >= 2 && wordCount < 10) {
		return true
	}

	return false
}

// ExtractHashtags returns all #hashtag words with the # stripped, in order
// of appearance. Duplicates are retained.
func ExtractHashtags(text string) []string {
	return extractGroups(hashtagPattern, text)
}

// ExtractMentions returns all @mention words with the @ stripped, in order
// of appearance.
func ExtractMentions(text string) []string {
	return extractGroups(mentionPattern, text)
}

// ExtractURLs returns all http(s):// and www. substrings in order of
// appearance.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

func extractGroups(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// ContainsEmoji reports whether at least one rune is a recognized emoji
// code point.
func ContainsEmoji(text string) bool {
	for _, r := range text {
		if IsEmoji(r) {
			return true
		}
	}
	return false
}

// EmojiDensity returns the ratio of emoji runes to total runes, 0.0 for
// empty text.
func EmojiDensity(text string) float64 {
	if text == "" {
		return 0.0
	}

	total := 0
	emojiCount := 0
	for _, r := range text {
		total++
		if IsEmoji(r) {
			emojiCount++
		}
	}
	return float64(emojiCount) / float64(total)
}

// SlangDensity counts how many of the given slang terms occur in the text
// (each term at most once) and divides by the word count. When no terms are
// given, DefaultSlangTerms is used. Returns (0, 0.0) for empty text.
func SlangDensity(text string, slangTerms ...string) (int, float64) {
	if text == "" {
		return 0, 0.0
	}

	patterns := defaultSlangPatterns
	if len(slangTerms) > 0 {
		patterns = compileSlangPatterns(slangTerms)
	}

	lower := strings.ToLower(text)
	count := 0
	for _, p := range patterns {
		if p.MatchString(lower) {
			count++
		}
	}

	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return count, 0.0
	}
	return count, float64(count) / float64(wordCount)
}
