package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/jpcorpus"
	"github.com/fwojciec/jpcorpus/drive"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	driver := &drive.Driver{
		Config:      deps.Config,
		Blocker:     deps.Blocker,
		Extractor:   deps.Extractor,
		Detector:    deps.Detector,
		OutputDir:   c.Output,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}
	if c.MaxRecords > 0 {
		driver.Config.MaxRecordsPerFile = c.MaxRecords
	}

	started := time.Now().UTC()
	results, err := driver.Run(deps.Ctx, c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jpcorpus.ErrorMessage(err))
		return err
	}
	finished := time.Now().UTC()

	totals := drive.Aggregate(results)
	fmt.Fprintf(deps.Stdout, "Processed %d files (%d failed): %d records, %d kept in %s\n",
		totals.Files, totals.Failed, totals.Records, totals.Kept,
		finished.Sub(started).Round(time.Millisecond))

	if deps.Runs == nil {
		return nil
	}

	run := &jpcorpus.Run{
		InputDir:   c.Input,
		OutputDir:  c.Output,
		StartedAt:  started,
		FinishedAt: finished,
		Files:      totals.Files,
		Failed:     totals.Failed,
		Records:    totals.Records,
		Kept:       totals.Kept,
	}
	for _, r := range results {
		file := &jpcorpus.RunFile{
			Path:     r.Path,
			Duration: r.Duration,
			Records:  r.Stats.Processed,
			Kept:     r.Stats.Kept,
			Reasons:  r.Stats.Rejected,
		}
		if r.Err != nil {
			file.Err = r.Err.Error()
		}
		run.FileResults = append(run.FileResults, file)
	}

	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jpcorpus.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Recorded run %s\n", run.ID)

	return nil
}
