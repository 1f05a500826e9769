package jpcorpus

import (
	"context"
	"time"
)

// Run is a persisted record of one filtering pass over an input
// directory, together with its per-file outcomes.
type Run struct {
	ID         string    `json:"id"`
	InputDir   string    `json:"inputDir"`
	OutputDir  string    `json:"outputDir"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// Totals across all files in the run.
	Files   int `json:"files"`
	Failed  int `json:"failed"`
	Records int `json:"records"`
	Kept    int `json:"kept"`

	FileResults []*RunFile `json:"fileResults,omitempty"`
}

// RunFile is the outcome of one archive within a run.
type RunFile struct {
	Path     string         `json:"path"`
	Duration time.Duration  `json:"duration"`
	Records  int            `json:"records"`
	Kept     int            `json:"kept"`
	Reasons  map[Reason]int `json:"reasons,omitempty"`

	// Err is the error message when the file failed, empty otherwise.
	Err string `json:"err,omitempty"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.InputDir == "" {
		return Errorf(EINVALID, "Run input directory required.")
	}
	if r.OutputDir == "" {
		return Errorf(EINVALID, "Run output directory required.")
	}
	return nil
}

// RunFilter represents a filter used by FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// RunService represents a service for managing run history.
type RunService interface {
	// CreateRun persists a completed run and its per-file results.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run and its file results by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	// File results are not populated.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and its file results.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}
