package mock

import (
	"sync/atomic"

	"github.com/fwojciec/jpcorpus"
)

var _ jpcorpus.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of jpcorpus.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string) (string, bool)
	Calls    atomic.Int64
}

func (d *LanguageDetector) Detect(text string) (string, bool) {
	d.Calls.Add(1)
	return d.DetectFn(text)
}
