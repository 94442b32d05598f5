package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRedisCacheInvalidURL(t *testing.T) {
	_, err := NewRedisCache("not-a-redis-url", "test:")
	require.Error(t, err)
}

// Runs only when a Redis server is available, e.g. REDIS_TEST_URL=redis://localhost:6379/15
func TestRedisCacheRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	c, err := NewRedisCache(url, "devlens-test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()

	type payload struct {
		Name  string
		Count int
	}

	var got payload
	err = c.Get(ctx, "missing-"+time.Now().String(), &got)
	require.ErrorIs(t, err, ErrCacheMiss)

	err = c.Set(ctx, "roundtrip", payload{Name: "octocat", Count: 8}, time.Minute)
	require.NoError(t, err)

	err = c.Get(ctx, "roundtrip", &got)
	require.NoError(t, err)
	require.Equal(t, payload{Name: "octocat", Count: 8}, got)
}
