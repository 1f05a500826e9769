package jpcorpus

// Reason identifies why the pipeline discarded a record. Rejections are
// expected outcomes, not errors: they are tallied in aggregate and surfaced
// individually only in verbose inspection modes.
type Reason string

// The closed set of rejection reasons, roughly in gate order.
const (
	ReasonInvalidEncoding       Reason = "invalid_encoding"
	ReasonNotHTTPResponse       Reason = "not_http_response"
	ReasonBlockedDomain         Reason = "blocked_domain"
	ReasonWrongDeclaredLanguage Reason = "wrong_declared_language"
	ReasonScriptAbsent          Reason = "script_absent"
	ReasonDateListPage          Reason = "date_list_page"
	ReasonNoLongSentence        Reason = "no_long_sentence"
	ReasonRepetitiveContent     Reason = "repetitive_content"
	ReasonLanguageMismatch      Reason = "language_mismatch"
)

// Reasons lists every rejection reason, in gate order. Used for stable
// iteration when reporting tallies.
var Reasons = []Reason{
	ReasonInvalidEncoding,
	ReasonNotHTTPResponse,
	ReasonBlockedDomain,
	ReasonWrongDeclaredLanguage,
	ReasonScriptAbsent,
	ReasonDateListPage,
	ReasonNoLongSentence,
	ReasonRepetitiveContent,
	ReasonLanguageMismatch,
}

// Verdict is the outcome of classifying one record.
type Verdict struct {
	Keep bool

	// Reason is set when Keep is false.
	Reason Reason
}

// KeepVerdict returns a keep verdict.
func KeepVerdict() Verdict {
	return Verdict{Keep: true}
}

// RejectVerdict returns a reject verdict with the given reason.
func RejectVerdict(reason Reason) Verdict {
	return Verdict{Reason: reason}
}
