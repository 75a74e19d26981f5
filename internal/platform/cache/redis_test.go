package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute)
}

func TestFetchJSONPopulatesOnce(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int{"toplam": 42}, nil
	}

	var got map[string]int
	require.NoError(t, c.FetchJSON(ctx, "k", &got, loader))
	require.NoError(t, c.FetchJSON(ctx, "k", &got, loader))

	assert.Equal(t, 1, calls, "second fetch should hit the cache")
	assert.Equal(t, 42, got["toplam"])
}

func TestBumpChangesKeys(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	before, err := c.BuildKey(ctx, "kpi", "2025")
	require.NoError(t, err)
	require.NoError(t, c.Bump(ctx))
	after, err := c.BuildKey(ctx, "kpi", "2025")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestNilCacheDegradesToLoader(t *testing.T) {
	var c *Cache
	var got []int
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}
