// Package normalize implements the text normalization pipeline that
// prepares raw user text for a sentiment classification model.
//
// The pipeline applies a fixed sequence of transforms, each gated by the
// configured preprocessing level and the target model's traits: encoding
// repair, case folding, basic cleaning, HTML removal, special-token
// substitution, social-media handling, aggressive normalization and
// truncation. A pipeline is a pure function of its configuration; calls
// may run concurrently without coordination.
package normalize

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/pool"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
	"github.com/baditaflorin/go_sentiment_flow/pkg/social"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	phonePattern      = regexp.MustCompile(`\b(?:\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	mentionPattern    = regexp.MustCompile(`@\w+`)
	hashtagPattern    = regexp.MustCompile(`#(\w+)`)
	digitsPattern     = regexp.MustCompile(`\d+`)
)

// Contraction expansions, applied in order. The trailing n't rule must run
// after won't and can't, and the bare 't rule after n't.
var contractions = []struct {
	from, to string
}{
	{"won't", "will not"},
	{"can't", "cannot"},
	{"n't", " not"},
	{"'re", " are"},
	{"'s", " is"},
	{"'d", " would"},
	{"'ll", " will"},
	{"'t", " not"},
	{"'ve", " have"},
	{"'m", " am"},
}

// Inserted tokens are swapped for punctuation-free placeholders before the
// aggressive punctuation strip so it cannot damage them.
var tokenPlaceholders = []struct {
	token, placeholder string
}{
	{"[URL]", "TEMPURLTOKENXYZ"},
	{"[EMAIL]", "TEMPEMAILTOKENXYZ"},
	{"[PHONE]", "TEMPPHONETOKENXYZ"},
	{"[USER]", "TEMPUSERTOKENXYZ"},
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Pipeline transforms one input string into a bounded, cleaned string for
// a classification model. It is stateless apart from its immutable
// configuration.
type Pipeline struct {
	config   Config
	logger   ports.Logger
	builders *pool.StringBuilderPool
}

// NewPipeline creates a pipeline for the given configuration.
func NewPipeline(config Config, logger ports.Logger) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		config:   config,
		logger:   logger,
		builders: pool.NewStringBuilderPool(),
	}, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Normalize applies the full preprocessing pipeline to the input text.
// It never fails; empty input yields "".
func (p *Pipeline) Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Fix encoding issues first, so case folding and everything after it
	// sees the intended characters.
	out := FixEncoding(text)

	// Uncased models are lowercased early: later stages then operate on
	// consistent casing, and tokens inserted below keep their literal
	// uppercase form.
	if p.config.Uncased {
		out = strings.ToLower(out)
	}

	out = p.basicClean(out)

	if p.config.Level != domain.LevelMinimal {
		out = removeHTML(out)
		out = substituteSpecialTokens(out)

		// Social-media transforms run for social-media models and for text
		// that independently reads as social media.
		if p.config.SocialMedia || social.LooksLikeSocialMedia(out) {
			out = p.processSocialMedia(out)
		}

		if p.config.Level == domain.LevelAggressive {
			out = p.aggressiveNormalize(out)
		}
	}

	return p.truncate(out)
}

// NormalizeBatch applies Normalize to each element independently. The
// output always has the same length and order as the input; empty
// elements map to "".
func (p *Pipeline) NormalizeBatch(texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = p.Normalize(text)
	}
	return out
}

// basicClean strips control characters, collapses whitespace, expands
// contractions (unless the level is preserve) and normalizes quotes.
func (p *Pipeline) basicClean(text string) string {
	text = p.stripControlChars(text)
	text = whitespacePattern.ReplaceAllString(text, " ")

	if p.config.Level != domain.LevelPreserve {
		for _, c := range contractions {
			text = strings.ReplaceAll(text, c.from, c.to)
		}
	}

	text = normalizeQuotes(text)
	return strings.TrimSpace(text)
}

// stripControlChars removes characters below 0x20 except newline and tab.
func (p *Pipeline) stripControlChars(text string) string {
	clean := true
	for _, r := range text {
		if r < 0x20 && r != '\n' && r != '\t' {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	sb := p.builders.Get()
	defer p.builders.Put(sb)
	sb.Grow(len(text))
	for _, r := range text {
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"´", "'", // acute accent
	"`", "'",
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
)

func normalizeQuotes(text string) string {
	return quoteReplacer.Replace(text)
}

// removeHTML strips tag-shaped substrings and decodes HTML entities.
func removeHTML(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

// substituteSpecialTokens replaces URLs, email addresses and phone numbers
// with literal tokens. URLs go first so they are not mistaken for other
// patterns.
func substituteSpecialTokens(text string) string {
	text = urlPattern.ReplaceAllString(text, "[URL]")
	text = emailPattern.ReplaceAllString(text, "[EMAIL]")
	text = phonePattern.ReplaceAllString(text, "[PHONE]")
	return text
}

// processSocialMedia handles @mentions, #hashtags and emoji according to
// the preprocessing level.
func (p *Pipeline) processSocialMedia(text string) string {
	text = mentionPattern.ReplaceAllString(text, "[USER]")

	if p.config.Level == domain.LevelAggressive {
		// Keep just the word without the #.
		text = hashtagPattern.ReplaceAllString(text, "$1")
	} else {
		// Mark as hashtag but keep the word.
		text = hashtagPattern.ReplaceAllString(text, "[HASHTAG] $1")
	}

	switch p.config.Level {
	case domain.LevelAggressive:
		text = removeEmoji(text)
	case domain.LevelStandard:
		text = demojize(text)
	}
	// Preserve level keeps emoji as is.

	return text
}

// aggressiveNormalize strips ASCII punctuation and replaces digit runs
// with [NUMBER]. Already-inserted tokens are protected by placeholders for
// the duration of the punctuation strip.
func (p *Pipeline) aggressiveNormalize(text string) string {
	for _, tp := range tokenPlaceholders {
		text = strings.ReplaceAll(text, tp.token, tp.placeholder)
	}

	text = p.stripPunctuation(text)
	text = digitsPattern.ReplaceAllString(text, "[NUMBER]")

	for _, tp := range tokenPlaceholders {
		text = strings.ReplaceAll(text, tp.placeholder, tp.token)
	}

	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (p *Pipeline) stripPunctuation(text string) string {
	if !strings.ContainsAny(text, asciiPunctuation) {
		return text
	}
	sb := p.builders.Get()
	defer p.builders.Put(sb)
	sb.Grow(len(text))
	for _, r := range text {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// truncate cuts the text to the configured maximum character count. This
// is simple character truncation, not token-aware and not word-boundary
// aware; token-based truncation would need the model tokenizer.
func (p *Pipeline) truncate(text string) string {
	if utf8.RuneCountInString(text) <= p.config.MaxLength {
		return text
	}
	runes := []rune(text)
	if p.logger != nil {
		p.logger.Debug("Truncating text",
			"from", len(runes),
			"to", p.config.MaxLength,
		)
	}
	return string(runes[:p.config.MaxLength])
}
