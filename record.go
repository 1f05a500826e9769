package jpcorpus

import "strings"

// Record is one self-describing unit from an archive file. The archive
// container format is a detail of the RecordReader implementation; the
// pipeline only ever sees header lookups and the raw body.
type Record struct {
	// Version is the container format version line, e.g. "WARC/1.0".
	Version string

	// Headers holds the record headers keyed by their canonical
	// lowercase name. Use Header for lookups.
	Headers map[string]string

	// Body is the raw record content. For response records this is the
	// full HTTP transaction: status line, headers, blank line, payload.
	Body []byte
}

// Well-known record header names.
const (
	HeaderType          = "warc-type"
	HeaderTargetURI     = "warc-target-uri"
	HeaderContentType   = "content-type"
	HeaderContentLength = "content-length"
)

// Header returns the value of the named header, matching case-insensitively.
// Returns "" if the header is absent.
func (r *Record) Header(key string) string {
	return r.Headers[strings.ToLower(key)]
}

// RecordReader streams records from one archive file.
// Implementations own the underlying file handle.
type RecordReader interface {
	// Next returns the next record, or io.EOF when the archive is
	// exhausted. A non-EOF error means the record could not be read;
	// depending on the error the stream may still be able to continue.
	Next() (*Record, error)

	Close() error
}
