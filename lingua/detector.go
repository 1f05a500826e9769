// Package lingua provides statistical language identification backed by the
// lingua-go n-gram models.
package lingua

import (
	"strings"

	"github.com/fwojciec/jpcorpus"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements jpcorpus.LanguageDetector at compile time.
var _ jpcorpus.LanguageDetector = (*Detector)(nil)

// candidates restricts the models loaded by the detector. The cheap script
// gates upstream have already discarded pages with no Japanese script, so
// the realistic confusions left are the CJK neighbours and English; loading
// all ~75 languages would cost startup time and memory for no benefit.
var candidates = []lingua.Language{
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
	lingua.English,
}

// Detector identifies the language of short text samples.
// Building a Detector loads the language models; construct one per process
// and share it, it is safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a Detector with preloaded models.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			WithPreloadedLanguageModels().
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the most likely language, or
// ok=false when no confident guess exists.
func (d *Detector) Detect(text string) (string, bool) {
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}
