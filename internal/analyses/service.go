package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-ats/internal/documents"
	"resume-ats/internal/queue"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/resume/ats"
	"resume-ats/resume/contract"
	"resume-ats/resume/model"
	"resume-ats/resume/service"
)

// staleAfter is how long a processing analysis may run before another worker may claim it.
const staleAfter = 15 * time.Minute

// DocumentSource resolves an owner's document and its extracted text.
type DocumentSource interface {
	Get(ctx context.Context, ownerID, documentID string) (documents.Document, error)
	Text(ctx context.Context, doc documents.Document) (string, error)
}

// Service contains business logic for analyses.
type Service struct {
	Repo   Repo
	Docs   DocumentSource
	Engine service.Engine
	// Queue hands jobs to workers. When nil, analyses run in-process.
	Queue queue.Client
	Now   func() time.Time

	wg sync.WaitGroup
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Start records a queued analysis of one of the owner's documents and dispatches it.
func (s *Service) Start(ctx context.Context, ownerID, documentID, rawMode, jobDescription string) (Analysis, error) {
	if ownerID == "" {
		return Analysis{}, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	jobDescription = strings.TrimSpace(jobDescription)
	mode, err := resolveMode(rawMode, jobDescription)
	if err != nil {
		return Analysis{}, contract.InvalidInputError{Field: "mode", Reason: err.Error()}
	}
	switch mode {
	case ModeJobMatch:
		if _, err := s.Engine.ClassifyJobText(jobDescription); err != nil {
			return Analysis{}, err
		}
	case ModeATS:
		jobDescription = ""
	}

	doc, err := s.Docs.Get(ctx, ownerID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return Analysis{}, ErrDocumentNotFound
		}
		return Analysis{}, fmt.Errorf("document lookup: %w", err)
	}

	analysis := Analysis{
		ID:             uuid.NewString(),
		DocumentID:     doc.ID,
		OwnerID:        ownerID,
		Mode:           mode,
		JobDescription: jobDescription,
		Status:         StatusQueued,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("create analysis: %w", err)
	}

	if err := s.dispatch(ctx, analysis); err != nil {
		s.fail(ctx, analysis, storageError{err}, nil)
		return Analysis{}, err
	}
	return analysis, nil
}

func (s *Service) dispatch(ctx context.Context, analysis Analysis) error {
	requestID := requestIDFromContext(ctx)
	if s.Queue != nil {
		err := s.Queue.Send(ctx, queue.Message{
			AnalysisID: analysis.ID,
			RequestID:  requestID,
			EnqueuedAt: s.now().Format(time.RFC3339),
			Version:    queue.MessageVersion,
		})
		if err != nil {
			return fmt.Errorf("enqueue analysis: %w", err)
		}
		telemetry.Info("analysis.enqueued", map[string]any{
			"request_id":  requestID,
			"analysis_id": analysis.ID,
			"document_id": analysis.DocumentID,
		})
		return nil
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.ProcessAnalysis(detach(ctx), analysis.ID); err != nil {
			telemetry.Warn("analysis.process_failed", map[string]any{"analysis_id": analysis.ID, "error": err})
		}
	}()
	return nil
}

// Wait blocks until in-process analyses finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Get returns one of the owner's analyses.
func (s *Service) Get(ctx context.Context, ownerID, analysisID string) (Analysis, error) {
	if ownerID == "" {
		return Analysis{}, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	if _, err := uuid.Parse(analysisID); err != nil {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetForOwner(ctx, ownerID, analysisID)
}

// List returns the owner's analyses newest first.
func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) ([]Analysis, error) {
	if ownerID == "" {
		return nil, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	return s.Repo.ListByOwner(ctx, ownerID, limit, offset)
}

// ProcessAnalysis claims the analysis, runs the engine and stores the outcome.
// It returns an error only when a retry may succeed; permanent failures are
// recorded on the analysis and reported as success to the caller.
func (s *Service) ProcessAnalysis(ctx context.Context, analysisID string) (err error) {
	startedAt := s.now()
	claimed, err := s.Repo.Claim(ctx, analysisID, startedAt, startedAt.Add(-staleAfter))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			telemetry.Warn("analysis.missing", map[string]any{"analysis_id": analysisID, "request_id": requestIDFromContext(ctx)})
			return nil
		}
		return fmt.Errorf("claim analysis: %w", err)
	}
	if !claimed {
		telemetry.Info("analysis.skipped", map[string]any{"analysis_id": analysisID, "request_id": requestIDFromContext(ctx)})
		return nil
	}

	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return fmt.Errorf("analysis lookup: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = s.fail(ctx, analysis, fmt.Errorf("panic: %v", r), &startedAt)
		}
	}()

	metrics.IncAnalysisStarted()
	s.logStatus(ctx, analysis, StatusProcessing, "queued->processing", nil)

	result, err := s.analyze(ctx, analysis)
	if err != nil {
		return s.fail(ctx, analysis, err, &startedAt)
	}

	completedAt := s.now()
	if err := s.Repo.Complete(ctx, analysis.ID, result, completedAt); err != nil {
		return s.fail(ctx, analysis, storageError{fmt.Errorf("store result: %w", err)}, &startedAt)
	}
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs(startedAt, completedAt))
	s.logStatus(ctx, analysis, StatusCompleted, "processing->completed", map[string]any{
		"duration_ms": durationMs(startedAt, completedAt),
		"ats_score":   result.ATS.OverallScore,
	})
	return nil
}

func (s *Service) analyze(ctx context.Context, analysis Analysis) (Result, error) {
	doc, err := s.Docs.Get(ctx, analysis.OwnerID, analysis.DocumentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return Result{}, ErrDocumentNotFound
		}
		return Result{}, storageError{fmt.Errorf("document lookup id=%s: %w", analysis.DocumentID, err)}
	}

	text, err := s.Docs.Text(ctx, doc)
	if err != nil {
		if contract.IsNoContent(err) || contract.IsExtraction(err) {
			return Result{}, err
		}
		return Result{}, storageError{fmt.Errorf("document %s text: %w", doc.ID, err)}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	parsed, err := s.Engine.ParseDocument(text)
	if err != nil {
		return Result{}, err
	}
	score := s.Engine.ScoreDocument(text, parsed)
	result := Result{
		Resume:           parsed,
		ATS:              score,
		ScoreExplanation: explainScore(score),
	}

	var missing []string
	if analysis.Mode == ModeJobMatch {
		keywords, err := s.Engine.ClassifyJobText(analysis.JobDescription)
		if err != nil {
			return Result{}, err
		}
		report, err := s.Engine.OptimizeForJob(parsed, analysis.JobDescription)
		if err != nil {
			return Result{}, err
		}
		result.Keywords = &keywords
		result.Optimization = &report
		missing = report.MissingKeywords
	}
	result.Recommendations = ats.Recommendations(score.Issues, missing)
	if result.Recommendations == nil {
		result.Recommendations = []model.Recommendation{}
	}
	return result, nil
}

// fail records the failure. The returned error is non-nil only for retryable failures.
func (s *Service) fail(ctx context.Context, analysis Analysis, cause error, startedAt *time.Time) error {
	code, retryable := classifyFailure(cause)
	msg := sanitizeError(cause)
	completedAt := s.now()
	if err := s.Repo.Fail(context.WithoutCancel(ctx), analysis.ID, code, msg, retryable, completedAt); err != nil {
		telemetry.Error("analysis.fail_update_failed", map[string]any{
			"analysis_id": analysis.ID,
			"error":       err,
			"cause":       cause,
		})
	}
	metrics.IncAnalysisFailed()
	fields := map[string]any{
		"error_code": code,
		"retryable":  retryable,
		"error":      msg,
	}
	if startedAt != nil {
		fields["duration_ms"] = durationMs(*startedAt, completedAt)
		metrics.ObserveAnalysisDurationMs(durationMs(*startedAt, completedAt))
	}
	s.logStatus(ctx, analysis, StatusFailed, analysis.Status+"->failed", fields)
	if retryable {
		return cause
	}
	return nil
}

func (s *Service) logStatus(ctx context.Context, analysis Analysis, status, transition string, extra map[string]any) {
	fields := map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"owner_id":          analysis.OwnerID,
		"document_id":       analysis.DocumentID,
		"analysis_id":       analysis.ID,
		"mode":              string(analysis.Mode),
		"status":            status,
		"status_transition": transition,
	}
	for k, v := range extra {
		fields[k] = v
	}
	telemetry.Info("analysis.status", fields)
}

func durationMs(startedAt, completedAt time.Time) float64 {
	return float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0
}

const maxErrorMessageRunes = 500

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	return telemetry.Truncate(msg, maxErrorMessageRunes)
}
