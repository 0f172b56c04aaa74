package analyses

import (
	"time"

	"resume-ats/resume/model"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis represents a document analysis job.
type Analysis struct {
	ID             string       `json:"id"`
	DocumentID     string       `json:"documentId"`
	OwnerID        string       `json:"ownerId"`
	Mode           AnalysisMode `json:"mode"`
	JobDescription string       `json:"jobDescription,omitempty"`
	Status         string       `json:"status"`
	Result         *Result      `json:"result,omitempty"`
	ErrorCode      *string      `json:"errorCode,omitempty"`
	ErrorMessage   *string      `json:"errorMessage,omitempty"`
	ErrorRetryable *bool        `json:"errorRetryable,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	StartedAt      *time.Time   `json:"startedAt,omitempty"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
}

// Result is what a completed analysis stores.
type Result struct {
	Resume           model.Document            `json:"resume"`
	ATS              model.ATSScore            `json:"ats"`
	ScoreExplanation ScoreExplanation          `json:"scoreExplanation"`
	Recommendations  []model.Recommendation    `json:"recommendations"`
	Keywords         *model.KeywordAnalysis    `json:"keywords,omitempty"`
	Optimization     *model.OptimizationReport `json:"optimization,omitempty"`
}

// Summary is the list view of an analysis.
type Summary struct {
	AnalysisID string    `json:"analysisId"`
	DocumentID string    `json:"documentId"`
	Mode       string    `json:"mode"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	ATSScore   *int      `json:"atsScore,omitempty"`
	FitScore   *int      `json:"fitScore,omitempty"`
}

func toSummary(a Analysis) Summary {
	s := Summary{
		AnalysisID: a.ID,
		DocumentID: a.DocumentID,
		Mode:       string(a.Mode),
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
	if a.Status == StatusCompleted && a.Result != nil {
		score := a.Result.ATS.OverallScore
		s.ATSScore = &score
		if a.Result.Optimization != nil {
			fit := a.Result.Optimization.FitScore
			s.FitScore = &fit
		}
	}
	return s
}
