package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWritesJSONFields(t *testing.T) {
	prev := L()
	defer Set(prev)

	var buf bytes.Buffer
	UseWriter(&buf)

	Info("tool_call", map[string]any{"tool": "score_ats", "duration_ms": 12, "err": errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "tool_call" || entry["level"] != "info" {
		t.Fatalf("unexpected envelope: %v", entry)
	}
	if entry["tool"] != "score_ats" || entry["err"] != "boom" {
		t.Fatalf("unexpected fields: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestLevelsReachCore(t *testing.T) {
	prev := L()
	defer Set(prev)

	core, observed := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))

	Debug("d", nil)
	Warn("w", map[string]any{"k": "v"})
	Error("e", nil)

	entries := observed.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].ContextMap()["k"] != "v" {
		t.Fatalf("unexpected warn entry: %+v", entries[1])
	}
}

func TestSetNilFallsBackToNop(t *testing.T) {
	prev := L()
	defer Set(prev)

	Set(nil)
	Info("dropped", nil)
}

func TestTruncate(t *testing.T) {
	if got := Truncate("  abcdef  ", 3); got != "abc..." {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
