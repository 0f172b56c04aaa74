package queue

import (
	"encoding/json"
	"errors"
	"strings"
)

// MessageVersion is the payload version written by this build.
const MessageVersion = 1

var (
	ErrEmptyBody          = errors.New("empty message body")
	ErrMissingAnalysisID  = errors.New("missing analysis id")
	ErrUnsupportedVersion = errors.New("unsupported message version")
)

// Message asks a worker to process one analysis.
type Message struct {
	AnalysisID string `json:"analysisId"`
	RequestID  string `json:"requestId,omitempty"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return nil, ErrMissingAnalysisID
	}
	if msg.Version == 0 {
		msg.Version = MessageVersion
	}
	return json.Marshal(msg)
}

// DecodeMessage parses and validates a JSON payload. Version 0 is read as the current version.
func DecodeMessage(payload []byte) (Message, error) {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return Message{}, ErrEmptyBody
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	if msg.Version > MessageVersion {
		return msg, ErrUnsupportedVersion
	}
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return msg, ErrMissingAnalysisID
	}
	return msg, nil
}
