package mock

import (
	"sync/atomic"

	"github.com/fwojciec/jpcorpus"
)

var _ jpcorpus.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jpcorpus.Extractor.
// Calls counts invocations, which lets tests assert that the extractor was
// never reached for records rejected by the cheap gates.
type Extractor struct {
	ExtractFn func(html string) (string, error)
	Calls     atomic.Int64
}

func (e *Extractor) Extract(html string) (string, error) {
	e.Calls.Add(1)
	return e.ExtractFn(html)
}
