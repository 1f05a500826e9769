package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/blocklist"
	"github.com/fwojciec/jpcorpus/goquery"
	"github.com/fwojciec/jpcorpus/lingua"
	jpslog "github.com/fwojciec/jpcorpus/slog"
	"github.com/fwojciec/jpcorpus/sqlite"
	"github.com/fwojciec/jpcorpus/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for run history. Empty disables history.
	// Set before calling Run().
	DBPath string

	// SQLite database used by the run history service.
	DB *sqlite.DB

	// Service for end-to-end testing.
	RunService jpcorpus.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("JPCORPUS_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jpcorpus"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jpcorpus --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Load pipeline configuration
	if cli.Config != "" {
		deps.Config, err = jpcorpus.LoadConfig(cli.Config)
		if err != nil {
			return fmt.Errorf("failed to load config at %q: %w", cli.Config, err)
		}
	} else {
		deps.Config = jpcorpus.DefaultConfig()
	}
	if err := deps.Config.Validate(); err != nil {
		return err
	}

	// A missing blocklist directory is fatal only when one was requested.
	if cli.Blocklist != "" {
		set, err := blocklist.Load(cli.Blocklist)
		if err != nil {
			return fmt.Errorf("failed to load blocklist at %q: %w", cli.Blocklist, err)
		}
		deps.Logger.Info("blocklist loaded", "dir", cli.Blocklist, "hosts", set.Len())
		deps.Blocker = set
	}

	// Wire command-specific dependencies based on command
	if cmd == "run" || cmd == "inspect" {
		switch deps.Config.Extractor {
		case jpcorpus.ExtractorTrafilatura:
			deps.Extractor = trafilatura.NewExtractor()
		default:
			deps.Extractor = goquery.NewExtractor()
		}
		if cli.Verbose {
			deps.Extractor = jpslog.NewLoggingExtractor(deps.Extractor, deps.Logger)
		}

		deps.Detector = lingua.NewDetector()
		if cli.Verbose {
			deps.Detector = jpslog.NewLoggingDetector(deps.Detector, deps.Logger)
		}
	}

	// Open run history database when configured
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if m.DBPath != "" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		m.RunService = sqlite.NewRunService(m.DB)
		deps.DB = m.DB
		deps.Runs = m.RunService
	}

	return kongCtx.Run(deps)
}
