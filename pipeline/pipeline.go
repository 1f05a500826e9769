// Package pipeline implements the per-record classification-and-extraction
// pipeline: a chain of cheap-to-expensive gates that decide whether an
// archived web page is Japanese prose worth keeping, and the extraction
// that produces the cleaned text.
package pipeline

import (
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/goquery"
)

// Stage names, in execution order. Later stages are materially more
// expensive, so every gate short-circuits the rest on rejection.
const (
	StageEnvelope   = "envelope"
	StageBlocklist  = "blocklist"
	StageScript     = "script"
	StageExtract    = "extract"
	StageStructure  = "structure"
	StageRepetition = "repetition"
	StageConfirm    = "confirm"
)

// StageNames lists the stages in execution order, for stable reporting.
var StageNames = []string{
	StageEnvelope,
	StageBlocklist,
	StageScript,
	StageExtract,
	StageStructure,
	StageRepetition,
	StageConfirm,
}

// state carries one record through the gates. A record is classified using
// only its own bytes plus the shared read-only blocklist and config: no
// cross-record state, no ordering dependency between records.
type state struct {
	rec     *jpcorpus.Record
	payload string
	text    string

	// plain marks a WET conversion record: the payload is already
	// extracted text, so the extract gate normalizes instead of parsing.
	plain bool
}

// gate is one step of the chain: it inspects the state and returns "" to
// pass the record on, or the reason to reject it.
type gate struct {
	name  string
	check func(*state) jpcorpus.Reason
}

// Stats accumulates per-pipeline counters and stage timings.
type Stats struct {
	Processed int
	Kept      int
	Rejected  map[jpcorpus.Reason]int
	StageTime map[string]time.Duration
}

// Pipeline classifies archive records one at a time. It owns its timing
// accumulators and tallies, so each worker must use its own Pipeline; the
// injected blocker, extractor and detector are shared and must be safe for
// concurrent reads.
type Pipeline struct {
	cfg       jpcorpus.PipelineConfig
	blocker   jpcorpus.DomainBlocker
	extractor jpcorpus.Extractor
	detector  jpcorpus.LanguageDetector

	gates []gate
	stats Stats
}

// New creates a Pipeline. A nil blocker disables the blocklist gate.
func New(cfg jpcorpus.PipelineConfig, blocker jpcorpus.DomainBlocker, extractor jpcorpus.Extractor, detector jpcorpus.LanguageDetector) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		blocker:   blocker,
		extractor: extractor,
		detector:  detector,
		stats: Stats{
			Rejected:  make(map[jpcorpus.Reason]int),
			StageTime: make(map[string]time.Duration),
		},
	}
	p.gates = []gate{
		{StageEnvelope, p.checkEnvelope},
		{StageBlocklist, p.checkBlocklist},
		{StageScript, p.checkScript},
		{StageExtract, p.extract},
		{StageStructure, p.checkStructure},
		{StageRepetition, p.checkRepetition},
		{StageConfirm, p.confirmLanguage},
	}
	return p
}

// Process classifies one record. It returns the cleaned document and a keep
// verdict, or a nil document and the rejection reason. The record is only
// read for the duration of the call.
func (p *Pipeline) Process(rec *jpcorpus.Record) (*jpcorpus.Document, jpcorpus.Verdict) {
	p.stats.Processed++

	st := &state{rec: rec}
	for _, g := range p.gates {
		begin := time.Now()
		reason := g.check(st)
		p.stats.StageTime[g.name] += time.Since(begin)

		if reason != "" {
			p.stats.Rejected[reason]++
			return nil, jpcorpus.RejectVerdict(reason)
		}
	}

	p.stats.Kept++

	length, err := strconv.Atoi(rec.Header(jpcorpus.HeaderContentLength))
	if err != nil {
		length = len(rec.Body)
	}
	doc := &jpcorpus.Document{
		RecordType:    rec.Header(jpcorpus.HeaderType),
		TargetURI:     rec.Header(jpcorpus.HeaderTargetURI),
		ContentType:   rec.Header(jpcorpus.HeaderContentType),
		ContentLength: length,
		Text:          st.text,
	}
	return doc, jpcorpus.KeepVerdict()
}

// Stats returns a copy of the accumulated counters.
func (p *Pipeline) Stats() Stats {
	out := Stats{
		Processed: p.stats.Processed,
		Kept:      p.stats.Kept,
		Rejected:  make(map[jpcorpus.Reason]int, len(p.stats.Rejected)),
		StageTime: make(map[string]time.Duration, len(p.stats.StageTime)),
	}
	for reason, n := range p.stats.Rejected {
		out.Rejected[reason] = n
	}
	for name, d := range p.stats.StageTime {
		out.StageTime[name] = d
	}
	return out
}

// checkEnvelope admits two record shapes: archived HTTP responses, whose
// body splits into a protocol header block and an HTML payload, and WET
// conversion records, whose body is the payload.
func (p *Pipeline) checkEnvelope(st *state) jpcorpus.Reason {
	recordType := st.rec.Header(jpcorpus.HeaderType)
	contentType := st.rec.Header(jpcorpus.HeaderContentType)

	switch {
	case isHTTPResponse(recordType, contentType):
		if !utf8.Valid(st.rec.Body) {
			return jpcorpus.ReasonInvalidEncoding
		}
		env, ok := splitEnvelope(string(st.rec.Body))
		if !ok {
			return jpcorpus.ReasonNotHTTPResponse
		}
		st.payload = env.Payload
	case isTextConversion(recordType, contentType):
		if !utf8.Valid(st.rec.Body) {
			return jpcorpus.ReasonInvalidEncoding
		}
		st.payload = string(st.rec.Body)
		st.plain = true
	default:
		return jpcorpus.ReasonNotHTTPResponse
	}
	return ""
}

// checkBlocklist rejects records whose target host is banned. It runs
// before any expensive parsing to bound the work wasted on known-bad
// domains. An unparseable target URI means "no host" and fails open.
func (p *Pipeline) checkBlocklist(st *state) jpcorpus.Reason {
	if p.blocker == nil {
		return ""
	}
	u, err := url.Parse(st.rec.Header(jpcorpus.HeaderTargetURI))
	if err != nil {
		return ""
	}
	if p.blocker.Blocked(u.Hostname()) {
		return jpcorpus.ReasonBlockedDomain
	}
	return ""
}

// checkScript applies the two cheap pre-parse language heuristics to the
// raw payload. This is the primary low-cost filter: it has to discard the
// overwhelming majority of non-Japanese pages before any DOM construction,
// since parsing dominates CPU cost.
func (p *Pipeline) checkScript(st *state) jpcorpus.Reason {
	if wrongDeclaredLanguage(st.payload, p.cfg.TargetLang) {
		return jpcorpus.ReasonWrongDeclaredLanguage
	}
	if countScripts(st.payload) < p.cfg.ScriptMajorityThreshold {
		return jpcorpus.ReasonScriptAbsent
	}
	return ""
}

// extract never rejects: malformed HTML degrades to whatever text the
// permissive parser recovers, and a page with no usable text falls out at
// the structure gate instead. Conversion payloads carry no markup, so they
// skip the extractor and only get whitespace normalization.
func (p *Pipeline) extract(st *state) jpcorpus.Reason {
	if st.plain {
		st.text = goquery.NormalizeText(st.payload)
		return ""
	}
	text, err := p.extractor.Extract(st.payload)
	if err != nil {
		text = ""
	}
	st.text = text
	return ""
}

func (p *Pipeline) checkStructure(st *state) jpcorpus.Reason {
	if countDateMentions(st.text, p.cfg.DateListThreshold) > p.cfg.DateListThreshold {
		return jpcorpus.ReasonDateListPage
	}
	if !hasLongSentence(st.text, p.cfg.LongSentenceLen, p.cfg.LongSentenceComma) {
		return jpcorpus.ReasonNoLongSentence
	}
	return ""
}

func (p *Pipeline) checkRepetition(st *state) jpcorpus.Reason {
	if isRepetitive(st.text, p.cfg.NgramSize, p.cfg.NgramRepeatThreshold) {
		return jpcorpus.ReasonRepetitiveContent
	}
	return ""
}

// confirmLanguage runs last: per call it is the most expensive gate, and
// the earlier gates are expected to shrink the surviving volume by one to
// two orders of magnitude before it is reached.
func (p *Pipeline) confirmLanguage(st *state) jpcorpus.Reason {
	lang, ok := p.detector.Detect(prefixRunes(st.text, p.cfg.DetectPrefixChars))
	if !ok || lang != p.cfg.TargetLang {
		return jpcorpus.ReasonLanguageMismatch
	}
	return ""
}

// prefixRunes returns the first n runes of s without splitting a codepoint.
func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
