package warcio_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/warcio"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// warcRecord renders one record in WARC/1.0 framing.
func warcRecord(warcType, uri, body string) []byte {
	var b bytes.Buffer
	b.WriteString("WARC/1.0\r\n")
	fmt.Fprintf(&b, "WARC-Type: %s\r\n", warcType)
	if uri != "" {
		fmt.Fprintf(&b, "WARC-Target-URI: %s\r\n", uri)
	}
	b.WriteString("Content-Type: application/http; msgtype=response\r\n")
	fmt.Fprintf(&b, "Content-Length: %d\r\n", len(body))
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n\r\n")
	return b.Bytes()
}

func TestReader_Next(t *testing.T) {
	t.Parallel()

	t.Run("reads records in archive order", func(t *testing.T) {
		t.Parallel()

		var archive bytes.Buffer
		archive.Write(warcRecord("warcinfo", "", "software: test"))
		archive.Write(warcRecord("response", "http://example.jp/a", "HTTP/1.1 200 OK\r\n\r\nhello"))
		archive.Write(warcRecord("response", "http://example.jp/b", "HTTP/1.1 200 OK\r\n\r\nworld"))

		r := warcio.NewReader(&archive)

		first, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "WARC/1.0", first.Version)
		assert.Equal(t, "warcinfo", first.Header("WARC-Type"))

		second, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "http://example.jp/a", second.Header("WARC-Target-URI"))
		assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\nhello", string(second.Body))

		third, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "http://example.jp/b", third.Header("warc-target-uri"))

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("header lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		archive := bytes.NewBuffer(warcRecord("response", "http://example.jp/", "x"))
		r := warcio.NewReader(archive)

		rec, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "response", rec.Header("WARC-TYPE"))
		assert.Equal(t, "response", rec.Header("warc-type"))
	})

	t.Run("body length is exact even with blank lines inside", func(t *testing.T) {
		t.Parallel()

		body := "line one\r\n\r\nline two after blank"
		archive := bytes.NewBuffer(warcRecord("response", "http://example.jp/", body))
		r := warcio.NewReader(archive)

		rec, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, body, string(rec.Body))
	})

	t.Run("missing version line fails with EINVALID", func(t *testing.T) {
		t.Parallel()

		r := warcio.NewReader(bytes.NewBufferString("not a warc file\r\n"))

		_, err := r.Next()
		require.Error(t, err)
		assert.Equal(t, jpcorpus.EINVALID, jpcorpus.ErrorCode(err))
	})

	t.Run("truncated body fails with EINVALID", func(t *testing.T) {
		t.Parallel()

		data := warcRecord("response", "http://example.jp/", "full body here")
		r := warcio.NewReader(bytes.NewBuffer(data[:len(data)-12]))

		_, err := r.Next()
		require.Error(t, err)
		assert.Equal(t, jpcorpus.EINVALID, jpcorpus.ErrorCode(err))
	})

	t.Run("framing errors are sticky", func(t *testing.T) {
		t.Parallel()

		var archive bytes.Buffer
		archive.WriteString("WARC/1.0\r\nContent-Length: banana\r\n\r\n")
		archive.Write(warcRecord("response", "http://example.jp/", "x"))
		r := warcio.NewReader(&archive)

		_, err := r.Next()
		require.Error(t, err)

		_, again := r.Next()
		assert.Equal(t, err, again)
	})
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("reads a plain archive from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.warc")
		require.NoError(t, os.WriteFile(path, warcRecord("response", "http://example.jp/", "body"), 0644))

		r, err := warcio.Open(path)
		require.NoError(t, err)
		defer r.Close()

		rec, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "body", string(rec.Body))
	})

	t.Run("decompresses gzip archives including concatenated members", func(t *testing.T) {
		t.Parallel()

		var compressed bytes.Buffer
		for _, uri := range []string{"http://example.jp/a", "http://example.jp/b"} {
			gw := gzip.NewWriter(&compressed)
			_, err := gw.Write(warcRecord("response", uri, "content"))
			require.NoError(t, err)
			require.NoError(t, gw.Close())
		}

		path := filepath.Join(t.TempDir(), "crawl.warc.gz")
		require.NoError(t, os.WriteFile(path, compressed.Bytes(), 0644))

		r, err := warcio.Open(path)
		require.NoError(t, err)
		defer r.Close()

		first, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "http://example.jp/a", first.Header("WARC-Target-URI"))

		second, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "http://example.jp/b", second.Header("WARC-Target-URI"))

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		t.Parallel()

		_, err := warcio.Open(filepath.Join(t.TempDir(), "missing.warc"))
		require.Error(t, err)
	})
}
