package mock

import (
	"context"

	"github.com/fwojciec/jpcorpus"
)

var _ jpcorpus.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of jpcorpus.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *jpcorpus.Document) error
	CloseFn         func() error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *jpcorpus.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}

func (w *DocumentWriter) Close() error {
	if w.CloseFn != nil {
		return w.CloseFn()
	}
	return nil
}
