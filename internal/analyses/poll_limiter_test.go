package analyses

import (
	"testing"
	"time"
)

func TestPollLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := newPollLimiter(2*time.Second, func() time.Time { return now })

	if !limiter.Allow("owner", "a") {
		t.Fatalf("first poll should pass")
	}
	if limiter.Allow("owner", "a") {
		t.Fatalf("second poll inside the window should be limited")
	}
	if !limiter.Allow("owner", "b") {
		t.Fatalf("other analyses are tracked separately")
	}
	if !limiter.Allow("other", "a") {
		t.Fatalf("other owners are tracked separately")
	}

	now = now.Add(2 * time.Second)
	if !limiter.Allow("owner", "a") {
		t.Fatalf("poll after the window should pass")
	}
	if got := limiter.RetryAfterSeconds(); got != 2 {
		t.Fatalf("expected retry after 2, got %d", got)
	}
}

func TestPollLimiterDefaults(t *testing.T) {
	var nilLimiter *pollLimiter
	if !nilLimiter.Allow("owner", "a") {
		t.Fatalf("nil limiter allows everything")
	}
	limiter := newPollLimiter(0, nil)
	if limiter.window != pollLimitWindow {
		t.Fatalf("expected default window, got %s", limiter.window)
	}
	if limiter.RetryAfterSeconds() != 1 {
		t.Fatalf("expected retry after 1")
	}
}
