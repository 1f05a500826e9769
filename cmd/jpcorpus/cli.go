package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config    jpcorpus.PipelineConfig
	Blocker   jpcorpus.DomainBlocker
	Extractor jpcorpus.Extractor
	Detector  jpcorpus.LanguageDetector

	DB   *sqlite.DB
	Runs jpcorpus.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string `short:"C" type:"path" help:"YAML pipeline config file"`
	Blocklist string `type:"path" help:"Blocklist directory (host lists grouped in subdirectories)"`
	DB        string `help:"SQLite database for run history (default: $JPCORPUS_DB; empty disables history)"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`

	Run     RunCmd     `cmd:"" help:"Filter a directory of WARC/WET archives into a text corpus"`
	Inspect InspectCmd `cmd:"" help:"Show per-record verdicts for a single archive"`
	Stats   StatsCmd   `cmd:"" help:"Show recent run summaries"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Input       string `arg:"" type:"path" help:"Directory containing WARC/WET archives"`
	Output      string `short:"o" default:"corpus" help:"Output directory for filtered text"`
	Concurrency int    `short:"c" help:"Concurrent file limit (default: number of CPUs)"`
	MaxRecords  int    `help:"Stop each file after this many records"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Archive     string `arg:"" type:"path" help:"Archive file to inspect"`
	Samples     int    `short:"s" default:"3" help:"Number of kept-text samples to print"`
	SampleChars int    `default:"200" help:"Characters per sample"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Limit int `short:"n" default:"10" help:"Number of recent runs to show"`
}
