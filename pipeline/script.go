package pipeline

import (
	"regexp"
	"strings"
)

// langAttrRe matches an <html ... lang="xx"> attribute with single-, double-
// or unquoted values. Compiled once and shared read-only by all workers.
var langAttrRe = regexp.MustCompile(`(?i)<html[^>]*[\s"']lang\s*=\s*("([^"]*)"|'([^']*)'|([^\s>"']+))`)

// declaredLanguage returns the value of the page's html lang attribute, or
// "" if none is declared.
func declaredLanguage(payload string) string {
	m := langAttrRe.FindStringSubmatch(payload)
	if m == nil {
		return ""
	}
	for _, group := range m[2:] {
		if group != "" {
			return strings.ToLower(group)
		}
	}
	return ""
}

// wrongDeclaredLanguage reports whether the page declares a language that
// does not start with the target two-letter code. An absent declaration is
// never evidence of a mismatch: markup is missing or wrong too often.
func wrongDeclaredLanguage(payload, targetLang string) bool {
	declared := declaredLanguage(payload)
	if declared == "" {
		return false
	}
	return !strings.HasPrefix(declared, targetLang)
}

// The three Unicode block ranges characteristic of Japanese text. CJK
// ideographs alone also cover Chinese, which is why the gate asks for a
// majority of ranges rather than any single one.
const (
	hiraganaLo, hiraganaHi = '぀', 'ゟ'
	katakanaLo, katakanaHi = '゠', 'ヿ'
	cjkLo, cjkHi           = '一', '鿿'
)

// countScripts scans the payload and returns how many of the three Japanese
// script ranges appear at least once. The scan stops as soon as all three
// have been seen.
func countScripts(payload string) int {
	var hiragana, katakana, cjk bool
	for _, r := range payload {
		switch {
		case r >= hiraganaLo && r <= hiraganaHi:
			hiragana = true
		case r >= katakanaLo && r <= katakanaHi:
			katakana = true
		case r >= cjkLo && r <= cjkHi:
			cjk = true
		default:
			continue
		}
		if hiragana && katakana && cjk {
			break
		}
	}

	count := 0
	for _, present := range []bool{hiragana, katakana, cjk} {
		if present {
			count++
		}
	}
	return count
}
