package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/jpcorpus"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if deps.Runs == nil {
		fmt.Fprintf(deps.Stderr, "error: no run history database configured. Set JPCORPUS_DB or pass --db.\n")
		return jpcorpus.Errorf(jpcorpus.EINVALID, "no run history database configured")
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, jpcorpus.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jpcorpus.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'jpcorpus run' with a database configured.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  files=%d failed=%d records=%d kept=%d duration=%s\n",
			run.ID,
			run.StartedAt.Format(time.RFC3339),
			run.Files, run.Failed, run.Records, run.Kept,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	}

	return nil
}
