package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jpcorpus"
)

// Ensure LoggingExtractor implements jpcorpus.Extractor.
var _ jpcorpus.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   jpcorpus.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next jpcorpus.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract extracts text from HTML and logs input and output sizes.
func (e *LoggingExtractor) Extract(html string) (string, error) {
	begin := time.Now()
	text, err := e.next.Extract(html)
	if err != nil {
		e.logger.Debug("text extraction failed",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}
	e.logger.Debug("text extraction",
		"bytes", len(html),
		"chars", len([]rune(text)),
		"duration", time.Since(begin),
	)
	return text, nil
}
