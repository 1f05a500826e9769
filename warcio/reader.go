// Package warcio reads WARC and WET web-crawl archives.
package warcio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/jpcorpus"
	"github.com/klauspost/compress/gzip"
)

// Ensure Reader implements jpcorpus.RecordReader at compile time.
var _ jpcorpus.RecordReader = (*Reader)(nil)

// Reader streams records from one WARC or WET archive file. Files ending in
// .gz are decompressed transparently; concatenated gzip members (the common
// layout for web-crawl archives, one member per record) are handled by the
// multistream reader.
type Reader struct {
	file *os.File
	gz   *gzip.Reader
	br   *bufio.Reader

	// err is sticky: once framing is lost there is no reliable way to
	// resynchronize on the next record boundary.
	err error
}

// Open opens an archive file for reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := &Reader{file: f}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, jpcorpus.Errorf(jpcorpus.EINVALID, "archive %q: %v", path, err)
		}
		r.gz = gz
		r.br = bufio.NewReaderSize(gz, 1<<16)
	} else {
		r.br = bufio.NewReaderSize(f, 1<<16)
	}
	return r, nil
}

// NewReader reads records from an already-open stream. Used by tests and by
// callers that manage decompression themselves.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 1<<16)}
}

// Next returns the next record, or io.EOF when the archive is exhausted.
func (r *Reader) Next() (*jpcorpus.Record, error) {
	if r.err != nil {
		return nil, r.err
	}

	rec, err := r.readRecord()
	if err != nil && err != io.EOF {
		r.err = err
	}
	return rec, err
}

func (r *Reader) readRecord() (*jpcorpus.Record, error) {
	// Skip the blank lines separating records.
	var version string
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line != "" {
			version = line
			break
		}
	}

	if !strings.HasPrefix(version, "WARC/") {
		return nil, jpcorpus.Errorf(jpcorpus.EINVALID, "malformed record: expected version line, got %q", truncate(version, 40))
	}

	headers := make(map[string]string)
	for {
		line, err := r.readLine()
		if err != nil {
			if err == io.EOF {
				return nil, jpcorpus.Errorf(jpcorpus.EINVALID, "malformed record: unterminated header block")
			}
			return nil, err
		}
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, jpcorpus.Errorf(jpcorpus.EINVALID, "malformed record: header line %q", truncate(line, 40))
		}
		headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}

	length, err := strconv.Atoi(headers[jpcorpus.HeaderContentLength])
	if err != nil || length < 0 {
		return nil, jpcorpus.Errorf(jpcorpus.EINVALID, "malformed record: content length %q", headers[jpcorpus.HeaderContentLength])
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r.br, body); err != nil {
		return nil, jpcorpus.Errorf(jpcorpus.EINVALID, "malformed record: body truncated at %d bytes", length)
	}

	return &jpcorpus.Record{
		Version: version,
		Headers: headers,
		Body:    body,
	}, nil
}

// readLine reads one CRLF- or LF-terminated line, stripping the terminator.
func (r *Reader) readLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.gz != nil {
		r.gz.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
