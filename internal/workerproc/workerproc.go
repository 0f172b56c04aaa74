// Package workerproc runs queued analyses for the SQS worker and the Lambda trigger.
package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"resume-ats/internal/analyses"
	"resume-ats/internal/queue"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
)

// Processor runs one analysis. Errors mean the job should be redelivered.
type Processor interface {
	ProcessAnalysis(ctx context.Context, analysisID string) error
}

// MessageMeta captures details useful for logging undecodable payloads.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrProcess indicates processing failed after successful decoding.
type ErrProcess struct {
	AnalysisID string
	RequestID  string
	Err        error
}

func (e ErrProcess) Error() string {
	return fmt.Sprintf("process analysis %s: %v", e.AnalysisID, e.Err)
}

func (e ErrProcess) Unwrap() error { return e.Err }

// NewHandler adapts a Processor to the queue consumer.
func NewHandler(p Processor) queue.Handler {
	return func(ctx context.Context, msg queue.Message) error {
		return run(ctx, p, msg)
	}
}

// HandleBody decodes and processes a raw payload. Undecodable payloads are
// logged and dropped so they are not redelivered.
func HandleBody(ctx context.Context, p Processor, body string) error {
	if p == nil {
		return errors.New("analysis processor not configured")
	}
	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		meta := ComputeMeta(body)
		telemetry.Error("worker.analysis.decode_failed", map[string]any{
			"body_len":    meta.BodyLen,
			"body_sha256": meta.BodySHA,
			"request_id":  msg.RequestID,
			"error":       err,
		})
		metrics.IncJobDropped()
		return nil
	}
	return run(ctx, p, msg)
}

func run(ctx context.Context, p Processor, msg queue.Message) error {
	ctx = analyses.WithRequestID(ctx, msg.RequestID)
	if err := p.ProcessAnalysis(ctx, msg.AnalysisID); err != nil {
		return ErrProcess{AnalysisID: msg.AnalysisID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}
