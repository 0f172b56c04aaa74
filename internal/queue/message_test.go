package queue

import (
	"errors"
	"testing"
)

func TestEncodeSetsVersion(t *testing.T) {
	payload, err := EncodeMessage(Message{AnalysisID: "analysis-123", RequestID: "request-456", EnqueuedAt: "2026-01-30T22:00:00Z"})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if got.Version != MessageVersion || got.AnalysisID != "analysis-123" || got.RequestID != "request-456" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestEncodeRequiresAnalysisID(t *testing.T) {
	if _, err := EncodeMessage(Message{}); !errors.Is(err, ErrMissingAnalysisID) {
		t.Fatalf("expected ErrMissingAnalysisID, got %v", err)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"empty", "  ", ErrEmptyBody},
		{"missing id", `{"requestId":"r"}`, ErrMissingAnalysisID},
		{"future version", `{"analysisId":"a","version":2}`, ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeMessage([]byte(tt.payload)); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := DecodeMessage([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
