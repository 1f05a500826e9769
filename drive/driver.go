// Package drive provides the file-level parallel driver. It fans whole
// archive files out across a bounded worker pool; each worker owns its own
// reader, pipeline and output writer, so workers share nothing mutable.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/fs"
	"github.com/fwojciec/jpcorpus/pipeline"
	"github.com/fwojciec/jpcorpus/warcio"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// archiveExtensions are the input file suffixes the driver picks up.
var archiveExtensions = []string{".warc", ".warc.gz", ".wet", ".wet.gz"}

// DocumentWriteCloser is the per-file output sink owned by one worker.
type DocumentWriteCloser interface {
	jpcorpus.DocumentWriter
	Close() error
}

// FileResult is the outcome of processing one archive file.
type FileResult struct {
	Path     string
	Duration time.Duration
	Stats    pipeline.Stats

	// Err is set when the file could not be opened or its record stream
	// ended abnormally. Stats may still hold partial counts.
	Err error
}

// Totals aggregates results across files.
type Totals struct {
	Files   int
	Failed  int
	Records int
	Kept    int
}

// Aggregate sums per-file results into run totals.
func Aggregate(results []FileResult) Totals {
	var t Totals
	for _, r := range results {
		t.Files++
		if r.Err != nil {
			t.Failed++
		}
		t.Records += r.Stats.Processed
		t.Kept += r.Stats.Kept
	}
	return t
}

// Driver processes every archive file in a directory. The injected blocker,
// extractor and detector must be safe for concurrent reads; everything else
// a worker touches is created per file.
type Driver struct {
	Config    jpcorpus.PipelineConfig
	Blocker   jpcorpus.DomainBlocker
	Extractor jpcorpus.Extractor
	Detector  jpcorpus.LanguageDetector
	OutputDir string

	// Concurrency bounds the worker pool. Zero or negative means one
	// worker per CPU.
	Concurrency int

	Logger *slog.Logger

	// OpenReader and NewWriter exist for tests; nil means the real
	// archive reader and file writer.
	OpenReader func(path string) (jpcorpus.RecordReader, error)
	NewWriter  func(path string) (DocumentWriteCloser, error)

	// progress throttles console output across all workers.
	progress rate.Sometimes
}

// Run processes every archive file found in inputDir and returns one result
// per file, in enumeration order. A failed file never affects the others;
// there are no retries, since the inputs are immutable and a failed read
// would fail identically again. The returned error reports only setup
// problems (unreadable input directory, cancelled context).
func (d *Driver) Run(ctx context.Context, inputDir string) ([]FileResult, error) {
	paths, err := listArchives(inputDir)
	if err != nil {
		return nil, err
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	d.progress = rate.Sometimes{First: 1, Interval: time.Second}

	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = d.processFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (d *Driver) processFile(ctx context.Context, path string) FileResult {
	logger := d.logger().With("file", filepath.Base(path))
	begin := time.Now()
	result := FileResult{Path: path}

	openReader := d.OpenReader
	if openReader == nil {
		openReader = func(path string) (jpcorpus.RecordReader, error) {
			return warcio.Open(path)
		}
	}
	newWriter := d.NewWriter
	if newWriter == nil {
		newWriter = func(path string) (DocumentWriteCloser, error) {
			return fs.NewWriter(path)
		}
	}

	reader, err := openReader(path)
	if err != nil {
		logger.Error("open archive failed", "error", err)
		result.Err = err
		return result
	}
	defer reader.Close()

	writer, err := newWriter(fs.OutputPath(d.OutputDir, path))
	if err != nil {
		logger.Error("open output failed", "error", err)
		result.Err = err
		return result
	}

	p := pipeline.New(d.Config, d.Blocker, d.Extractor, d.Detector)

	for {
		if ctx.Err() != nil {
			result.Err = ctx.Err()
			break
		}
		if d.Config.MaxRecordsPerFile > 0 && p.Stats().Processed >= d.Config.MaxRecordsPerFile {
			logger.Info("record limit reached", "limit", d.Config.MaxRecordsPerFile)
			break
		}

		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The archive reader cannot resynchronize once framing is
			// lost, so a read error ends this file. Other files are
			// unaffected.
			logger.Error("archive read failed", "error", err)
			result.Err = err
			break
		}

		doc, verdict := p.Process(rec)
		if verdict.Keep {
			if err := writer.WriteDocument(ctx, doc); err != nil {
				logger.Error("write failed", "error", err)
				result.Err = err
				break
			}
		}

		stats := p.Stats()
		if d.Config.ProgressInterval > 0 && stats.Processed%d.Config.ProgressInterval == 0 {
			d.progress.Do(func() {
				logger.Info("progress",
					"records", stats.Processed,
					"kept", stats.Kept,
					"elapsed", time.Since(begin),
				)
			})
		}
	}

	if err := writer.Close(); err != nil && result.Err == nil {
		logger.Error("close output failed", "error", err)
		result.Err = err
	}

	result.Duration = time.Since(begin)
	result.Stats = p.Stats()
	logFileSummary(logger, result)
	return result
}

// logFileSummary reports the end-of-file counts and the share of wall time
// each stage consumed.
func logFileSummary(logger *slog.Logger, result FileResult) {
	attrs := []any{
		"records", result.Stats.Processed,
		"kept", result.Stats.Kept,
		"duration", result.Duration,
	}
	for _, name := range pipeline.StageNames {
		d, ok := result.Stats.StageTime[name]
		if !ok {
			continue
		}
		share := 0.0
		if result.Duration > 0 {
			share = float64(d) / float64(result.Duration) * 100
		}
		attrs = append(attrs, "stage."+name, fmt.Sprintf("%s (%.1f%%)", d.Round(time.Millisecond), share))
	}
	if result.Err != nil {
		attrs = append(attrs, "error", result.Err)
	}
	logger.Info("file done", attrs...)
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// listArchives returns the archive files directly inside dir, in lexical
// order.
func listArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, jpcorpus.Errorf(jpcorpus.ENOTFOUND, "input directory %q: %v", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, ext := range archiveExtensions {
			if strings.HasSuffix(name, ext) {
				paths = append(paths, filepath.Join(dir, name))
				break
			}
		}
	}
	return paths, nil
}
