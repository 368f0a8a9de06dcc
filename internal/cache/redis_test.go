package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		assert.False(t, client.IsRateLimited(ctx, "10.0.0.1", 3, time.Minute), "hit %d", i+1)
	}
	assert.True(t, client.IsRateLimited(ctx, "10.0.0.1", 3, time.Minute))
	assert.False(t, client.IsRateLimited(ctx, "10.0.0.2", 3, time.Minute))

	mr.FastForward(2 * time.Minute)
	assert.False(t, client.IsRateLimited(ctx, "10.0.0.1", 3, time.Minute))
}

func TestIsRateLimitedFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	assert.False(t, client.IsRateLimited(context.Background(), "10.0.0.1", 0, time.Minute))
}

func TestNewClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := NewClient(ctx, addr)
	assert.Error(t, err)
}
