package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/pipeline"
	"github.com/fwojciec/jpcorpus/warcio"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	reader, err := warcio.Open(c.Archive)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jpcorpus.ErrorMessage(err))
		return err
	}
	defer reader.Close()

	p := pipeline.New(deps.Config, deps.Blocker, deps.Extractor, deps.Detector)

	var samples []string
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jpcorpus.ErrorMessage(err))
			return err
		}

		doc, verdict := p.Process(rec)
		uri := rec.Header(jpcorpus.HeaderTargetURI)
		if uri == "" {
			uri = "(no uri)"
		}
		if verdict.Keep {
			fmt.Fprintf(deps.Stdout, "keep  %-24s %s\n", "", uri)
			if len(samples) < c.Samples {
				samples = append(samples, truncateRunes(doc.Text, c.SampleChars))
			}
		} else {
			fmt.Fprintf(deps.Stdout, "drop  %-24s %s\n", verdict.Reason, uri)
		}
	}

	stats := p.Stats()
	fmt.Fprintf(deps.Stdout, "\n%d records, %d kept\n", stats.Processed, stats.Kept)
	for _, reason := range jpcorpus.Reasons {
		if n := stats.Rejected[reason]; n > 0 {
			fmt.Fprintf(deps.Stdout, "  %-24s %d\n", reason, n)
		}
	}

	for i, sample := range samples {
		fmt.Fprintf(deps.Stdout, "\n--- sample %d ---\n%s\n", i+1, sample)
	}

	return nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
