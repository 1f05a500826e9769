package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/jpcorpus"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ jpcorpus.RunService = (*RunService)(nil)

// RunService implements jpcorpus.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun persists a completed run and its per-file results. The inserts
// run in one transaction: a run row is stored with its complete file list
// or not at all.
func (s *RunService) CreateRun(ctx context.Context, run *jpcorpus.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, input_dir, output_dir, started_at, finished_at, files, failed, records, kept)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.InputDir, run.OutputDir,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339),
		run.Files, run.Failed, run.Records, run.Kept)
	if err != nil {
		return err
	}

	for i, file := range run.FileResults {
		if file.Path == "" {
			return jpcorpus.Errorf(jpcorpus.EINVALID, "Run file path required.")
		}
		reasons, err := json.Marshal(file.Reasons)
		if err != nil {
			return fmt.Errorf("failed to encode reason tally: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_files (run_id, path, duration_ms, records, kept, reasons, err, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, file.Path, file.Duration.Milliseconds(),
			file.Records, file.Kept, string(reasons), file.Err, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its file results by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*jpcorpus.Run, error) {
	filter := jpcorpus.RunFilter{ID: &id, Limit: 1}
	runs, err := s.findRuns(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, jpcorpus.Errorf(jpcorpus.ENOTFOUND, "run not found")
	}

	run := runs[0]
	run.FileResults, err = s.findRunFiles(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
// File results are not populated.
func (s *RunService) FindRuns(ctx context.Context, filter jpcorpus.RunFilter) ([]*jpcorpus.Run, error) {
	return s.findRuns(ctx, filter)
}

func (s *RunService) findRuns(ctx context.Context, filter jpcorpus.RunFilter) ([]*jpcorpus.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, input_dir, output_dir, started_at, finished_at, files, failed, records, kept FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*jpcorpus.Run
	for rows.Next() {
		var run jpcorpus.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.InputDir, &run.OutputDir, &startedAt, &finishedAt,
			&run.Files, &run.Failed, &run.Records, &run.Kept); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *RunService) findRunFiles(ctx context.Context, runID string) ([]*jpcorpus.RunFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, duration_ms, records, kept, reasons, err
		FROM run_files
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*jpcorpus.RunFile
	for rows.Next() {
		var file jpcorpus.RunFile
		var durationMS int64
		var reasons string

		if err := rows.Scan(&file.Path, &durationMS, &file.Records, &file.Kept, &reasons, &file.Err); err != nil {
			return nil, err
		}

		file.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(reasons), &file.Reasons); err != nil {
			return nil, fmt.Errorf("failed to decode reason tally: %w", err)
		}

		files = append(files, &file)
	}

	return files, rows.Err()
}

// DeleteRun permanently removes a run and its file results.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return jpcorpus.Errorf(jpcorpus.ENOTFOUND, "run not found")
	}

	return nil
}
