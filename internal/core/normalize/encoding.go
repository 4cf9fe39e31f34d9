package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Mojibake repair. Text that was UTF-8 encoded but decoded as Windows-1252
// or Latin-1 shows up as sequences like "Ã©" for "é" and "â€™" for "’".
// Re-encoding the runes through the single-byte table and re-reading the
// bytes as UTF-8 reverses one round of that corruption. Repair runs before
// case folding so repaired characters are cased correctly afterward.

const maxRepairPasses = 3

// FixEncoding repairs mojibake where possible and NFC-normalizes the
// result. Text without mojibake markers passes through unchanged apart
// from NFC normalization.
func FixEncoding(text string) string {
	for i := 0; i < maxRepairPasses && looksLikeMojibake(text); i++ {
		repaired, ok := reinterpret(text)
		if !ok {
			break
		}
		text = repaired
	}
	return norm.NFC.String(text)
}

// looksLikeMojibake checks for the signature of UTF-8 multi-byte sequences
// decoded as a single-byte charset: "Ã" and "Â" lead bytes for Latin text,
// "â€" for mangled punctuation.
func looksLikeMojibake(s string) bool {
	return strings.Contains(s, "Ã") ||
		strings.Contains(s, "Â") ||
		strings.Contains(s, "â€")
}

// reinterpret encodes the string's runes back to Windows-1252 (falling back
// to Latin-1 for the few unmapped control slots) and reads the bytes as
// UTF-8. The result is accepted only when it is valid UTF-8 and strictly
// shorter in runes than the input; genuine repairs always shrink the text,
// so anything else is treated as a false positive and left alone.
func reinterpret(s string) (string, bool) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		encoded, err = charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return "", false
		}
	}
	if !utf8.Valid(encoded) {
		return "", false
	}
	repaired := string(encoded)
	if utf8.RuneCountInString(repaired) >= utf8.RuneCountInString(s) {
		return "", false
	}
	return repaired, true
}
