package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/internal/queue"
)

type fakeProcessor struct {
	fail map[string]bool
}

func (f fakeProcessor) ProcessAnalysis(_ context.Context, analysisID string) error {
	if f.fail[analysisID] {
		return errors.New("boom")
	}
	return nil
}

func record(t *testing.T, messageID, analysisID string) events.SQSMessage {
	t.Helper()
	body, err := queue.EncodeMessage(queue.Message{AnalysisID: analysisID})
	require.NoError(t, err)
	return events.SQSMessage{MessageId: messageID, Body: string(body)}
}

func TestProcessBatchReportsOnlyFailedRecords(t *testing.T) {
	p := fakeProcessor{fail: map[string]bool{"a-2": true}}
	event := events.SQSEvent{Records: []events.SQSMessage{
		record(t, "m1", "a-1"),
		record(t, "m2", "a-2"),
		{MessageId: "m3", Body: "not json"},
	}}

	resp := processBatch(context.Background(), p, event)
	require.Len(t, resp.BatchItemFailures, 1)
	assert.Equal(t, "m2", resp.BatchItemFailures[0].ItemIdentifier)
}

func TestProcessBatchEmpty(t *testing.T) {
	resp := processBatch(context.Background(), fakeProcessor{}, events.SQSEvent{})
	assert.Empty(t, resp.BatchItemFailures)
}
