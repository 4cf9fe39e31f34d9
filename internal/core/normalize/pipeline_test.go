package normalize

import (
	"strings"
	"testing"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
)

func newTestPipeline(t *testing.T, model string, maxLength int, level domain.PreprocessingLevel) *Pipeline {
	t.Helper()
	p, err := NewPipeline(NewConfig(model, maxLength, level), nil)
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	return p
}

func TestNormalizeStandard(t *testing.T) {
	p := newTestPipeline(t, DefaultModel, DefaultMaxLength, domain.LevelStandard)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "Lowercased for uncased model",
			input:    "The Quick BROWN Fox",
			expected: "the quick brown fox",
		},
		{
			name:     "Whitespace collapsed",
			input:    "hello    world\n\nagain\ttabs",
			expected: "hello world again tabs",
		},
		{
			name:     "Control characters stripped",
			input:    "hel\x01lo\x02 world",
			expected: "hello world",
		},
		{
			name:     "Contractions expanded",
			input:    "This'll be cleaned. It's a test.",
			expected: "this will be cleaned. it is a test.",
		},
		{
			name:     "Negation contractions",
			input:    "I won't go and you can't stay, isn't it sad",
			expected: "i will not go and you cannot stay, is not it sad",
		},
		{
			name:     "Curly quotes normalized",
			input:    "“quoted” and ‘single’",
			expected: `"quoted" and 'single'`,
		},
		{
			name:     "HTML tags stripped and entities decoded",
			input:    "<p>Hello <b>World</b> &amp; more</p>",
			expected: "hello world & more",
		},
		{
			name:     "URL replaced with token",
			input:    "Check https://example.com/page?q=1 now",
			expected: "check [URL] now",
		},
		{
			name:     "www URL replaced with token",
			input:    "visit www.example.com today",
			expected: "visit [URL] today",
		},
		{
			name:     "Email replaced with token",
			input:    "write to someone@example.com please",
			expected: "write to [EMAIL] please",
		},
		{
			name: "Phone replaced with token",
			// The word boundary cannot sit before "(", so the paren stays.
			input:    "call (555) 123-4567 now",
			expected: "call ([PHONE] now",
		},
		{
			name:     "Bare phone replaced with token",
			input:    "call 555-123-4567 now",
			expected: "call [PHONE] now",
		},
		{
			name:     "Mention and hashtag handled when text reads social",
			input:    "@Alice check this #golang",
			expected: "[USER] check this [HASHTAG] golang",
		},
		{
			name:     "Punctuation kept at standard level",
			input:    "Really?! Yes... maybe.",
			expected: "really?! yes... maybe.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeMinimal(t *testing.T) {
	p := newTestPipeline(t, DefaultModel, DefaultMaxLength, domain.LevelMinimal)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "HTML kept at minimal level",
			// Only basic cleaning runs; tags and URLs survive.
			input:    "<b>Hi</b>   there https://example.com",
			expected: "<b>hi</b> there https://example.com",
		},
		{
			name:     "Contractions still expanded",
			input:    "it's fine",
			expected: "it is fine",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeAggressive(t *testing.T) {
	p := newTestPipeline(t, DefaultModel, DefaultMaxLength, domain.LevelAggressive)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Punctuation stripped",
			input:    "Really?! Yes... maybe.",
			expected: "really yes maybe",
		},
		{
			name:     "Digits replaced with token",
			input:    "rated 10 out of 10",
			expected: "rated [NUMBER] out of [NUMBER]",
		},
		{
			name: "Inserted tokens survive the punctuation strip",
			// [URL] is protected by a placeholder while punctuation is removed.
			input:    "see https://example.com, call (555) 123-4567!",
			expected: "see [URL] call [PHONE]",
		},
		{
			name:     "Hashtag keeps bare word",
			input:    "so cool #golang",
			expected: "so cool golang",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizePreserve(t *testing.T) {
	p := newTestPipeline(t, "cardiffnlp/twitter-roberta-base-sentiment", DefaultMaxLength, domain.LevelPreserve)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Casing and contractions kept",
			// Preserve skips case folding and contraction expansion.
			input:    "It's GREAT",
			expected: "It's GREAT",
		},
		{
			name:     "Mentions still tokenized",
			input:    "Thanks @Bob for the tip",
			expected: "Thanks [USER] for the tip",
		},
		{
			name:     "Emoji kept",
			input:    "love it 🎉",
			expected: "love it 🎉",
		},
		{
			name:     "Hashtag marked but word kept",
			input:    "shipping #golang today",
			expected: "shipping [HASHTAG] golang today",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeDemojize(t *testing.T) {
	p := newTestPipeline(t, DefaultModel, DefaultMaxLength, domain.LevelStandard)

	// High emoji density makes the text read as social media, so the
	// standard level converts emoji to their name tokens.
	got := p.Normalize("good 😂")
	expected := "good :face_with_tears_of_joy:"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestNormalizeTruncation(t *testing.T) {
	p := newTestPipeline(t, DefaultModel, 11, domain.LevelStandard)

	got := p.Normalize("hello world this is long")
	if got != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", got)
	}

	// Truncation counts runes, not bytes.
	p2 := newTestPipeline(t, "some-cased-model", 3, domain.LevelStandard)
	got = p2.Normalize("ééééé")
	if got != "ééé" {
		t.Errorf("expected %q, got %q", "ééé", got)
	}
}

func TestNormalizeFixedPoint(t *testing.T) {
	// A first application can still change on the second pass (inserted
	// tokens like [URL] get case-folded for uncased models), but repeated
	// normalization must stabilize: the second and third applications have
	// to agree for any input.
	inputs := []string{
		"@alice OMG #wow 🎉🎉 call (555) 123-4567",
		"Visit https://a.com or mail me at x@y.com",
		"won't can't it's <b>bold</b> &amp; done",
		"“Quoted” praise… rated 10/10!!!",
		"plain words only",
		"",
	}
	levels := []domain.PreprocessingLevel{
		domain.LevelMinimal,
		domain.LevelStandard,
		domain.LevelAggressive,
	}

	for _, level := range levels {
		p := newTestPipeline(t, DefaultModel, DefaultMaxLength, level)
		for _, input := range inputs {
			once := p.Normalize(input)
			twice := p.Normalize(once)
			thrice := p.Normalize(twice)
			if twice != thrice {
				t.Errorf("level %s: no fixed point after two passes on %q: %q != %q",
					level, input, twice, thrice)
			}
		}
	}
}

func TestNormalizeBatch(t *testing.T) {
	p := newTestPipeline(t, DefaultModel, DefaultMaxLength, domain.LevelStandard)

	inputs := []string{"Hello World", "", "It's fine"}
	got := p.NormalizeBatch(inputs)

	if len(got) != len(inputs) {
		t.Fatalf("expected %d outputs, got %d", len(inputs), len(got))
	}
	expected := []string{"hello world", "", "it is fine"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("index %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestNormalizeLongInput(t *testing.T) {
	p := newTestPipeline(t, DefaultModel, DefaultMaxLength, domain.LevelStandard)

	long := strings.Repeat("word ", 10000)
	got := p.Normalize(long)
	if len([]rune(got)) > DefaultMaxLength {
		t.Errorf("output exceeds max length: %d runes", len([]rune(got)))
	}
}

func TestConfigValidate(t *testing.T) {
	if err := NewConfig(DefaultModel, 0, domain.LevelStandard).Validate(); err == nil {
		t.Error("expected error for zero max length")
	}
	if err := NewConfig(DefaultModel, 512, "bogus").Validate(); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigTraits(t *testing.T) {
	cfg := NewConfig("nlptown/bert-base-multilingual-uncased-sentiment", 512, domain.LevelStandard)
	if !cfg.Uncased || !cfg.Multilingual || cfg.SocialMedia {
		t.Errorf("unexpected traits: %+v", cfg)
	}

	cfg = NewConfig("cardiffnlp/twitter-roberta-base-sentiment", 512, domain.LevelPreserve)
	if cfg.Uncased || !cfg.SocialMedia {
		t.Errorf("unexpected traits: %+v", cfg)
	}
}
