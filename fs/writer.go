// Package fs provides file-based output for the corpus.
package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/jpcorpus"
)

// BoundaryMarker separates records in an output file. The marker line and
// the metadata field order below are an external contract for downstream
// readers and must not change.
const BoundaryMarker = "==== END OF RECORD ===="

// OutputPath converts an input archive path to its output file path under
// baseDir. Example: /data/in/crawl-00001.warc.gz → <baseDir>/crawl-00001.txt
func OutputPath(baseDir, inputPath string) string {
	name := filepath.Base(inputPath)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".warc")
	name = strings.TrimSuffix(name, ".wet")
	return filepath.Join(baseDir, name+".txt")
}

// FormatDocument renders one kept record as an output block: the metadata
// header, a blank line, the cleaned text, and the boundary marker line.
func FormatDocument(doc *jpcorpus.Document) string {
	var b strings.Builder
	b.WriteString("WARC-Type: ")
	b.WriteString(doc.RecordType)
	b.WriteString("\nWARC-Target-URI: ")
	b.WriteString(doc.TargetURI)
	b.WriteString("\nContent-Length: ")
	b.WriteString(strconv.Itoa(doc.ContentLength))
	b.WriteString("\nContent-Type: ")
	b.WriteString(doc.ContentType)
	b.WriteString("\n\n")
	b.WriteString(doc.Text)
	b.WriteString("\n")
	b.WriteString(BoundaryMarker)
	b.WriteString("\n")
	return b.String()
}

// Ensure Writer implements jpcorpus.DocumentWriter at compile time.
var _ jpcorpus.DocumentWriter = (*Writer)(nil)

// Writer writes kept documents to one output file, in encounter order.
// Each worker owns its Writer exclusively; it is not safe for concurrent
// use.
type Writer struct {
	f  *os.File
	bw *bufio.Writer
}

// NewWriter creates the output file at path, creating parent directories as
// needed. An existing file is truncated: runs are single-pass, there is no
// resumption to append to.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, bw: bufio.NewWriter(f)}, nil
}

// WriteDocument appends one document block to the output file.
func (w *Writer) WriteDocument(_ context.Context, doc *jpcorpus.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	_, err := w.bw.WriteString(FormatDocument(doc))
	return err
}

// Close flushes buffered output and closes the file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
