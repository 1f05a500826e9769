package pipeline

import "strings"

// Envelope is the header/payload split of one archived HTTP transaction
// body. Ephemeral: recomputed per record, discarded with it.
type Envelope struct {
	HeaderBlock string
	Payload     string
}

// splitEnvelope locates the first blank-line separator in a record body and
// returns the protocol header block and the payload. Returns ok=false when
// the body contains no separator, which marks the record as malformed.
func splitEnvelope(body string) (Envelope, bool) {
	// The separator is whichever blank line comes first; CRLF-framed
	// responses may still contain bare-LF header blocks and vice versa.
	crlf := strings.Index(body, "\r\n\r\n")
	lf := strings.Index(body, "\n\n")
	switch {
	case crlf < 0 && lf < 0:
		return Envelope{}, false
	case crlf < 0:
		return Envelope{HeaderBlock: body[:lf], Payload: body[lf+2:]}, true
	case lf >= 0 && lf < crlf:
		return Envelope{HeaderBlock: body[:lf], Payload: body[lf+2:]}, true
	default:
		return Envelope{HeaderBlock: body[:crlf], Payload: body[crlf+4:]}, true
	}
}

// isHTTPResponse reports whether the record headers describe an archived
// HTTP response payload.
func isHTTPResponse(recordType, contentType string) bool {
	if !strings.EqualFold(recordType, "response") {
		return false
	}
	return strings.Contains(strings.ToLower(contentType), "application/http")
}

// isTextConversion reports whether the record headers describe a WET-style
// conversion record: text the crawler already extracted from a response.
// Such a body has no HTTP envelope and no markup.
func isTextConversion(recordType, contentType string) bool {
	if !strings.EqualFold(recordType, "conversion") {
		return false
	}
	ct := strings.ToLower(contentType)
	return ct == "" || strings.Contains(ct, "text/plain")
}
