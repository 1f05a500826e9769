package pipeline

import (
	"regexp"
	"strings"
)

// dateRe matches YYYY年M月 date mentions, the signature of archive/calendar
// link-list pages.
var dateRe = regexp.MustCompile(`\d{4}年\d{1,2}月`)

// countDateMentions counts date-pattern occurrences in the cleaned text,
// stopping once limit+1 have been found since everything past the threshold
// is the same answer.
func countDateMentions(text string, limit int) int {
	return len(dateRe.FindAllStringIndex(text, limit+1))
}

// sentence-terminal splitting runes: the ideographic full stop plus
// newlines left by pre-cleaned inputs.
func isSentenceBoundary(r rune) bool {
	return r == '。' || r == '\n'
}

// hasLongSentence reports whether any sentence segment exceeds minLen runes.
// When requireComma is set the segment must also contain an ideographic
// comma, which biases the corpus toward narrative prose over lists and
// menus.
func hasLongSentence(text string, minLen int, requireComma bool) bool {
	for _, seg := range strings.FieldsFunc(text, isSentenceBoundary) {
		seg = strings.TrimSpace(seg)
		if len([]rune(seg)) <= minLen {
			continue
		}
		if requireComma && !strings.ContainsRune(seg, '、') {
			continue
		}
		return true
	}
	return false
}
