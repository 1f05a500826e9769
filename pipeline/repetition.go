package pipeline

import (
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// isRepetitive reports whether any n-gram window of the normalized text
// occurs more than threshold times, at either word or character
// granularity. Repeated short phrases catch template spam in spaced text;
// repeated character sequences catch the same in script-dense text that
// has no word boundaries to split on.
func isRepetitive(text string, n, threshold int) bool {
	normalized := normalizeForCounting(text)
	if hasRepeatedWindow(strings.Fields(normalized), n, threshold) {
		return true
	}
	return hasRepeatedWindow(charTokens(normalized), n, threshold)
}

// normalizeForCounting lowercases the text and strips every rune that is
// neither alphanumeric nor whitespace, so that punctuation variants of the
// same phrase count as one window.
func normalizeForCounting(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// charTokens returns the non-whitespace runes of s as single-rune tokens,
// so a run of spaces can never form a window of its own.
func charTokens(s string) []string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		tokens = append(tokens, string(r))
	}
	return tokens
}

// hasRepeatedWindow slides a window of n tokens over the token stream and
// reports whether any exact window sequence occurs more than threshold
// times. Windows are counted by xxhash of the unit-separator-joined tokens;
// the 0x1F joiner keeps adjacent tokens from aliasing across boundaries.
func hasRepeatedWindow(tokens []string, n, threshold int) bool {
	if len(tokens) < n {
		return false
	}
	counts := make(map[uint64]int)
	for i := 0; i+n <= len(tokens); i++ {
		h := xxhash.Sum64String(strings.Join(tokens[i:i+n], "\x1f"))
		counts[h]++
		if counts[h] > threshold {
			return true
		}
	}
	return false
}
