package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parsed struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 4)

	var out parsed
	found, err := m.GetJSON(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.SetJSON(ctx, "doc", parsed{Name: "Jane", Skills: []string{"Go"}}, 0))
	found, err = m.GetJSON(ctx, "doc", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, parsed{Name: "Jane", Skills: []string{"Go"}}, out)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 4)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.SetJSON(ctx, "short", "v", 10*time.Second))
	require.NoError(t, m.SetJSON(ctx, "default", "v", 0))

	now = now.Add(30 * time.Second)
	var out string
	found, _ := m.GetJSON(ctx, "short", &out)
	assert.False(t, found)
	found, _ = m.GetJSON(ctx, "default", &out)
	assert.True(t, found)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryEvictsSoonestToExpire(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 2)

	require.NoError(t, m.SetJSON(ctx, "a", 1, time.Minute))
	require.NoError(t, m.SetJSON(ctx, "b", 2, time.Hour))
	require.NoError(t, m.SetJSON(ctx, "c", 3, time.Hour))

	assert.Equal(t, 2, m.Len())
	var v int
	found, _ := m.GetJSON(ctx, "a", &v)
	assert.False(t, found)
	found, _ = m.GetJSON(ctx, "c", &v)
	assert.True(t, found)
	assert.Equal(t, 3, v)

	// overwriting an existing key never evicts
	require.NoError(t, m.SetJSON(ctx, "c", 4, time.Hour))
	assert.Equal(t, 2, m.Len())
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "://nope", time.Minute)
	assert.Error(t, err)
}

func TestNewFallsBackToMemory(t *testing.T) {
	c := New(context.Background(), "", time.Minute)
	_, ok := c.(*Memory)
	assert.True(t, ok)

	c = New(context.Background(), "not a url", time.Minute)
	_, ok = c.(*Memory)
	assert.True(t, ok)
	assert.NoError(t, c.Close())
}
