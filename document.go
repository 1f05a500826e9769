package jpcorpus

import "context"

// Document is the cleaned text of a record that passed every gate, together
// with the record metadata the output contract requires.
type Document struct {
	RecordType    string
	TargetURI     string
	ContentType   string
	ContentLength int
	Text          string
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.RecordType == "" {
		return Errorf(EINVALID, "document record type required")
	}
	if d.Text == "" {
		return Errorf(EINVALID, "document text required")
	}
	return nil
}

// DocumentWriter writes kept documents to an output sink.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
}

// Extractor extracts prose from an HTML page, removing markup and
// non-content subtrees. The returned text is whitespace-normalized: runs of
// Unicode whitespace collapse to a single space and the result is trimmed.
type Extractor interface {
	Extract(html string) (string, error)
}

// LanguageDetector identifies the language of a short text sample.
// It returns the ISO 639-1 code of the best guess, or ok=false when no
// confident guess exists.
type LanguageDetector interface {
	Detect(text string) (lang string, ok bool)
}

// DomainBlocker reports whether a host is on the banned-domain list.
// Implementations are immutable after construction and safe for
// unsynchronized concurrent reads.
type DomainBlocker interface {
	Blocked(host string) bool
}
