package mock

import (
	"io"

	"github.com/fwojciec/jpcorpus"
)

var _ jpcorpus.RecordReader = (*RecordReader)(nil)

// RecordReader is a mock implementation of jpcorpus.RecordReader.
// When NextFn is nil it serves Records in order and then io.EOF, which
// covers the common case without boilerplate.
type RecordReader struct {
	NextFn  func() (*jpcorpus.Record, error)
	CloseFn func() error

	Records []*jpcorpus.Record
	pos     int
}

func (r *RecordReader) Next() (*jpcorpus.Record, error) {
	if r.NextFn != nil {
		return r.NextFn()
	}
	if r.pos >= len(r.Records) {
		return nil, io.EOF
	}
	rec := r.Records[r.pos]
	r.pos++
	return rec, nil
}

func (r *RecordReader) Close() error {
	if r.CloseFn != nil {
		return r.CloseFn()
	}
	return nil
}
