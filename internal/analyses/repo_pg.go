package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, document_id, owner_id, mode, job_description, status, result,
       error_code, error_message, error_retryable, created_at, started_at, completed_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, document_id, owner_id, mode, job_description, status, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var jobDescription sql.NullString
	if analysis.JobDescription != "" {
		jobDescription = sql.NullString{String: analysis.JobDescription, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.DocumentID,
		analysis.OwnerID,
		string(analysis.Mode),
		jobDescription,
		analysis.Status,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1
LIMIT 1`
	return scanOne(r.DB.QueryRowContext(ctx, query, analysisID))
}

// GetForOwner returns an analysis only when ownerID owns it.
func (r *PGRepo) GetForOwner(ctx context.Context, ownerID, analysisID string) (Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1 AND owner_id = $2
LIMIT 1`
	return scanOne(r.DB.QueryRowContext(ctx, query, analysisID, ownerID))
}

// ListByOwner returns analyses newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset = max(offset, 0)

	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE owner_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Claim implements Repo with a single conditional update.
func (r *PGRepo) Claim(ctx context.Context, analysisID string, startedAt, staleBefore time.Time) (bool, error) {
	const query = `
UPDATE analyses
SET status = 'processing', started_at = $2, completed_at = NULL,
    error_code = NULL, error_message = NULL, error_retryable = NULL
WHERE id = $1 AND (
    status = 'queued'
    OR (status = 'failed' AND error_retryable)
    OR (status = 'processing' AND (started_at IS NULL OR started_at < $3))
)`
	res, err := r.DB.ExecContext(ctx, query, analysisID, startedAt, staleBefore)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return true, nil
	}

	var exists int
	err = r.DB.QueryRowContext(ctx, `SELECT 1 FROM analyses WHERE id = $1`, analysisID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	return false, err
}

// Complete stores the result and marks the analysis completed.
func (r *PGRepo) Complete(ctx context.Context, analysisID string, result Result, completedAt time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	const query = `
UPDATE analyses
SET status = 'completed', result = $2, completed_at = $3
WHERE id = $1`
	return execOne(ctx, r.DB, query, analysisID, payload, completedAt)
}

// Fail records the failure and marks the analysis failed.
func (r *PGRepo) Fail(ctx context.Context, analysisID, code, message string, retryable bool, completedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = 'failed', error_code = $2, error_message = $3, error_retryable = $4, completed_at = $5
WHERE id = $1`
	return execOne(ctx, r.DB, query, analysisID, code, message, retryable, completedAt)
}

func execOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne(row rowScanner) (Analysis, error) {
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var mode string
	var jobDescription sql.NullString
	var result []byte
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var errorRetryable sql.NullBool
	var startedAt sql.NullTime
	var completedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.DocumentID,
		&a.OwnerID,
		&mode,
		&jobDescription,
		&a.Status,
		&result,
		&errorCode,
		&errorMessage,
		&errorRetryable,
		&a.CreatedAt,
		&startedAt,
		&completedAt,
	); err != nil {
		return Analysis{}, err
	}

	a.Mode = AnalysisMode(mode)
	if jobDescription.Valid {
		a.JobDescription = jobDescription.String
	}
	if len(result) > 0 {
		var decoded Result
		if err := json.Unmarshal(result, &decoded); err != nil {
			return Analysis{}, fmt.Errorf("decode analysis result id=%s: %w", a.ID, err)
		}
		a.Result = &decoded
	}
	if errorCode.Valid {
		a.ErrorCode = &errorCode.String
	}
	if errorMessage.Valid {
		a.ErrorMessage = &errorMessage.String
	}
	if errorRetryable.Valid {
		a.ErrorRetryable = &errorRetryable.Bool
	}
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return a, nil
}

var _ Repo = (*PGRepo)(nil)
