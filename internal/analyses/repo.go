package analyses

import (
	"context"
	"time"
)

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	GetForOwner(ctx context.Context, ownerID, analysisID string) (Analysis, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Analysis, error)
	// Claim moves a queued, retryable-failed or stale processing analysis to
	// processing. It reports false when another worker owns the analysis or it is finished.
	Claim(ctx context.Context, analysisID string, startedAt, staleBefore time.Time) (bool, error)
	Complete(ctx context.Context, analysisID string, result Result, completedAt time.Time) error
	Fail(ctx context.Context, analysisID, code, message string, retryable bool, completedAt time.Time) error
}
