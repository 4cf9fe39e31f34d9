package normalize

import "testing"

func TestFixEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Clean ASCII passes through",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "Clean accented text passes through",
			input:    "café résumé naïve",
			expected: "café résumé naïve",
		},
		{
			name: "Latin-1 mojibake repaired",
			// "café" after UTF-8 bytes were decoded as Windows-1252.
			input:    "cafÃ©",
			expected: "café",
		},
		{
			name:     "Mangled right quote repaired",
			input:    "donâ€™t",
			expected: "don’t",
		},
		{
			name:     "Multiple mojibake sequences",
			input:    "rÃ©sumÃ© naÃ¯ve",
			expected: "résumé naïve",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FixEncoding(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestLooksLikeMojibake(t *testing.T) {
	if looksLikeMojibake("plain text") {
		t.Error("plain text should not look like mojibake")
	}
	if !looksLikeMojibake("cafÃ©") {
		t.Error("expected mojibake marker to be detected")
	}
}
