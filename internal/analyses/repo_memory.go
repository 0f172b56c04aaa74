package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Analysis),
	}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// GetForOwner returns an analysis only when ownerID owns it.
func (r *MemoryRepo) GetForOwner(ctx context.Context, ownerID, analysisID string) (Analysis, error) {
	analysis, err := r.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.OwnerID != ownerID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// ListByOwner returns analyses newest first. A zero limit means no limit.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Analysis, 0)
	for _, a := range r.byID {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	offset = max(offset, 0)
	if offset >= len(out) {
		return []Analysis{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// Claim implements Repo.
func (r *MemoryRepo) Claim(ctx context.Context, analysisID string, startedAt, staleBefore time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return false, ErrNotFound
	}
	if !claimable(analysis, staleBefore) {
		return false, nil
	}
	analysis.Status = StatusProcessing
	analysis.StartedAt = &startedAt
	analysis.CompletedAt = nil
	analysis.ErrorCode = nil
	analysis.ErrorMessage = nil
	analysis.ErrorRetryable = nil
	r.byID[analysisID] = analysis
	return true, nil
}

func claimable(a Analysis, staleBefore time.Time) bool {
	switch a.Status {
	case StatusQueued:
		return true
	case StatusFailed:
		return a.ErrorRetryable != nil && *a.ErrorRetryable
	case StatusProcessing:
		return a.StartedAt == nil || a.StartedAt.Before(staleBefore)
	default:
		return false
	}
}

// Complete stores the result and marks the analysis completed.
func (r *MemoryRepo) Complete(ctx context.Context, analysisID string, result Result, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = StatusCompleted
	analysis.Result = &result
	analysis.CompletedAt = &completedAt
	r.byID[analysisID] = analysis
	return nil
}

// Fail records the failure and marks the analysis failed.
func (r *MemoryRepo) Fail(ctx context.Context, analysisID, code, message string, retryable bool, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = StatusFailed
	analysis.ErrorCode = &code
	analysis.ErrorMessage = &message
	analysis.ErrorRetryable = &retryable
	analysis.CompletedAt = &completedAt
	r.byID[analysisID] = analysis
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
