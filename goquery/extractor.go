// Package goquery provides HTML text extraction using CSS-selector-driven
// DOM manipulation.
package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jpcorpus"
	"golang.org/x/text/width"
)

// excludedSelector matches the subtrees that carry no prose value and whose
// boilerplate would corrupt the downstream heuristics. The parser lowercases
// tag names, so this also matches uppercase markup.
const excludedSelector = "script, style, header, footer, nav"

// Ensure Extractor implements jpcorpus.Extractor at compile time.
var _ jpcorpus.Extractor = (*Extractor)(nil)

// Extractor extracts text from HTML by parsing it into a DOM tree, dropping
// non-content subtrees, and collecting the remaining text nodes. Malformed
// HTML degrades gracefully: the parser produces a best-effort tree and
// extraction proceeds on whatever results.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns whitespace-normalized text.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", jpcorpus.Errorf(jpcorpus.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(excludedSelector).Remove()

	return NormalizeText(doc.Text()), nil
}

// NormalizeText folds half/full-width variants to their canonical form and
// collapses every run of Unicode whitespace into a single space, trimming
// the ends. Japanese pages mix fullwidth latin and halfwidth katakana
// freely; folding gives the corpus one consistent form.
func NormalizeText(s string) string {
	s = width.Fold.String(s)

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			// Leading whitespace never becomes pending: nothing has
			// been written yet.
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
