package db

import (
	"database/sql"
	"fmt"
	"time"
)

// RunRecord is one row of run history.
type RunRecord struct {
	RunID     int64
	TraceID   string
	URL       string
	Mode      string
	Status    string
	Language  string
	Error     string
	CreatedAt time.Time
	Artifacts []ArtifactRecord
}

// ArtifactRecord points at one file a run produced.
type ArtifactRecord struct {
	ArtifactID int64
	Kind       string
	FilePath   string
}

// RecordRun inserts a new run in "running" state and returns its ID.
func (db *DB) RecordRun(traceID, url, mode string) (int64, error) {
	result, err := db.Exec(
		"INSERT INTO runs (trace_id, url, mode, status) VALUES (?, ?, ?, 'running')",
		traceID, url, mode,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return result.LastInsertId()
}

// FinishRun marks a run finished with its final status, detected
// language, and error text (empty on success).
func (db *DB) FinishRun(runID int64, status, language, errText string) error {
	_, err := db.Exec(
		"UPDATE runs SET status = ?, language = ?, error = ?, finished_at = CURRENT_TIMESTAMP WHERE run_id = ?",
		status, NewNullString(language), NewNullString(errText), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// AddArtifact records a file produced by a run.
func (db *DB) AddArtifact(runID int64, kind, filePath string) (int64, error) {
	result, err := db.Exec(
		"INSERT INTO run_artifacts (run_id, kind, file_path) VALUES (?, ?, ?)",
		runID, kind, filePath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record artifact: %w", err)
	}
	return result.LastInsertId()
}

// RecentRuns returns the most recent runs, newest first, with their
// artifacts attached.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, trace_id, url, mode, status,
		       COALESCE(language, ''), COALESCE(error, ''), created_at
		FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.TraceID, &r.URL, &r.Mode, &r.Status,
			&r.Language, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for i := range runs {
		artifacts, err := db.listArtifacts(runs[i].RunID)
		if err != nil {
			return nil, err
		}
		runs[i].Artifacts = artifacts
	}
	return runs, nil
}

func (db *DB) listArtifacts(runID int64) ([]ArtifactRecord, error) {
	rows, err := db.Query(
		"SELECT artifact_id, kind, file_path FROM run_artifacts WHERE run_id = ? ORDER BY artifact_id",
		runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []ArtifactRecord
	for rows.Next() {
		var a ArtifactRecord
		if err := rows.Scan(&a.ArtifactID, &a.Kind, &a.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// NewNullString maps "" to NULL for optional text columns.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
