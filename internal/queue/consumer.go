package queue

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/telemetry"
)

const receiveCountAttribute = "ApproximateReceiveCount"

// Handler processes one decoded message. A returned error leaves the message
// on the queue for redelivery.
type Handler func(ctx context.Context, msg Message) error

// Consumer long-polls an SQS queue and runs Handler on a bounded number of goroutines.
type Consumer struct {
	API               SQSAPI
	QueueURL          string
	Handler           Handler
	Concurrency       int
	VisibilitySeconds int32
	WaitSeconds       int32
	ShutdownTimeout   time.Duration
}

// Run polls until ctx is cancelled, then waits up to ShutdownTimeout for in-flight messages.
func (c *Consumer) Run(ctx context.Context) {
	sem := make(chan struct{}, max(1, c.Concurrency))
	var wg sync.WaitGroup

	telemetry.Info("worker.started", map[string]any{
		"queue":              c.QueueURL,
		"concurrency":        cap(sem),
		"visibility_seconds": c.VisibilitySeconds,
	})

pollLoop:
	for {
		select {
		case <-ctx.Done():
			break pollLoop
		default:
		}

		resp, err := c.API.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.QueueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     c.WaitSeconds,
			VisibilityTimeout:   c.VisibilitySeconds,
			AttributeNames:      []sqstypes.QueueAttributeName{sqstypes.QueueAttributeName(receiveCountAttribute)},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break pollLoop
			}
			telemetry.Error("worker.receive_failed", map[string]any{"error": err})
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			metrics.IncJobReceived()
			wg.Add(1)
			go func(m sqstypes.Message) {
				defer wg.Done()
				defer func() { <-sem }()
				c.HandleMessage(ctx, m)
			}(msg)
		}
	}

	timeout := c.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	telemetry.Info("worker.shutdown", map[string]any{"timeout_ms": timeout.Milliseconds()})
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(timeout):
		telemetry.Warn("worker.shutdown_timeout", nil)
	}
}

// HandleMessage decodes and processes one SQS message. Undecodable messages are
// deleted; messages whose handler fails stay for redelivery.
func (c *Consumer) HandleMessage(ctx context.Context, msg sqstypes.Message) {
	body := aws.ToString(msg.Body)
	decoded, err := DecodeMessage([]byte(body))
	if err != nil {
		fields := baseFields(msg, decoded.AnalysisID, decoded.RequestID)
		fields["body_len"] = len(body)
		fields["error"] = err
		telemetry.Error("worker.analysis.decode_failed", fields)
		if c.delete(ctx, msg, decoded) {
			metrics.IncJobDropped()
		}
		return
	}

	telemetry.Info("worker.analysis.received", baseFields(msg, decoded.AnalysisID, decoded.RequestID))

	if err := c.Handler(ctx, decoded); err != nil {
		fields := baseFields(msg, decoded.AnalysisID, decoded.RequestID)
		fields["error"] = err
		telemetry.Error("worker.analysis.failed", fields)
		metrics.IncJobFailed()
		return
	}

	if c.delete(ctx, msg, decoded) {
		telemetry.Info("worker.analysis.completed", baseFields(msg, decoded.AnalysisID, decoded.RequestID))
		metrics.IncJobCompleted()
	}
}

func (c *Consumer) delete(ctx context.Context, msg sqstypes.Message, decoded Message) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	if receipt == "" {
		fields := baseFields(msg, decoded.AnalysisID, decoded.RequestID)
		fields["error"] = "missing receipt handle"
		telemetry.Error("worker.analysis.delete_failed", fields)
		return false
	}
	if _, err := c.API.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.QueueURL),
		ReceiptHandle: aws.String(receipt),
	}); err != nil {
		fields := baseFields(msg, decoded.AnalysisID, decoded.RequestID)
		fields["error"] = err
		telemetry.Error("worker.analysis.delete_failed", fields)
		return false
	}
	return true
}

func baseFields(msg sqstypes.Message, analysisID, requestID string) map[string]any {
	fields := map[string]any{
		"analysis_id":    analysisID,
		"sqs_message_id": aws.ToString(msg.MessageId),
		"receive_count":  receiveCount(msg),
	}
	if strings.TrimSpace(requestID) != "" {
		fields["request_id"] = requestID
	}
	return fields
}

func receiveCount(msg sqstypes.Message) int {
	raw := msg.Attributes[receiveCountAttribute]
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}
