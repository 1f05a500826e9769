package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jpcorpus"
)

// Ensure LoggingDetector implements jpcorpus.LanguageDetector.
var _ jpcorpus.LanguageDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a LanguageDetector with debug logging for language detection.
type LoggingDetector struct {
	next   jpcorpus.LanguageDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next jpcorpus.LanguageDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect detects the language of text, logs the outcome, and returns it.
func (d *LoggingDetector) Detect(text string) (string, bool) {
	begin := time.Now()
	lang, ok := d.next.Detect(text)
	langName := lang
	if !ok {
		langName = "(none)"
	}
	d.logger.Debug("language detection",
		"lang", langName,
		"chars", len([]rune(text)),
		"duration", time.Since(begin),
	)
	return lang, ok
}
