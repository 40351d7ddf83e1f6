package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrBuild(t *testing.T) {
	t.Run("BuildsOnceWhileFresh", func(t *testing.T) {
		cache := New(time.Minute)
		builds := 0
		build := func(ctx context.Context) (json.RawMessage, error) {
			builds++
			return json.RawMessage(`[1]`), nil
		}

		for i := 0; i < 3; i++ {
			data, err := cache.GetOrBuild(context.Background(), "/t1/bills", build)
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(data))
		}
		assert.Equal(t, 1, builds)
	})

	t.Run("BuildErrorNotCached", func(t *testing.T) {
		cache := New(time.Minute)
		builds := 0
		_, err := cache.GetOrBuild(context.Background(), "/t1/bills", func(ctx context.Context) (json.RawMessage, error) {
			builds++
			return nil, errors.New("upstream down")
		})
		assert.Error(t, err)

		data, err := cache.GetOrBuild(context.Background(), "/t1/bills", func(ctx context.Context) (json.RawMessage, error) {
			builds++
			return json.RawMessage(`[2]`), nil
		})
		require.NoError(t, err)
		assert.Equal(t, `[2]`, string(data))
		assert.Equal(t, 2, builds)
	})

	t.Run("ExpiredEntryRebuilds", func(t *testing.T) {
		cache := New(time.Nanosecond)
		builds := 0
		build := func(ctx context.Context) (json.RawMessage, error) {
			builds++
			return json.RawMessage(`[1]`), nil
		}
		_, _ = cache.GetOrBuild(context.Background(), "/t1/bills", build)
		time.Sleep(time.Millisecond)
		_, _ = cache.GetOrBuild(context.Background(), "/t1/bills", build)
		assert.Equal(t, 2, builds)
	})
}

func TestCache_Invalidate(t *testing.T) {
	cache := New(time.Minute)
	builds := 0
	build := func(ctx context.Context) (json.RawMessage, error) {
		builds++
		return json.RawMessage(`[1]`), nil
	}

	_, err := cache.GetOrBuild(context.Background(), "/t1/bills", build)
	require.NoError(t, err)

	// idempotent and order-independent: repeats and unknown paths are harmless
	cache.Invalidate("/t1/bills", "/t1/bills", "/never/cached")
	cache.Invalidate("/t1/bills")

	_, err = cache.GetOrBuild(context.Background(), "/t1/bills", build)
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestCache_InvalidateAll(t *testing.T) {
	cache := New(time.Minute)
	build := func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`[]`), nil
	}
	_, _ = cache.GetOrBuild(context.Background(), "/t1/bills", build)
	_, _ = cache.GetOrBuild(context.Background(), "/t1/students", build)

	cache.InvalidateAll()
	assert.Equal(t, 2, cache.Sweep())
	assert.Zero(t, cache.Len())
}

func TestCache_Sweep(t *testing.T) {
	cache := New(time.Minute)
	build := func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`[]`), nil
	}
	_, _ = cache.GetOrBuild(context.Background(), "/t1/bills", build)
	_, _ = cache.GetOrBuild(context.Background(), "/t1/students", build)

	cache.Invalidate("/t1/bills")
	assert.Equal(t, 1, cache.Sweep())
	assert.Equal(t, 1, cache.Len())
	assert.Zero(t, cache.Sweep())
}

func TestCache_ConcurrentRebuildIsDeduplicated(t *testing.T) {
	cache := New(time.Minute)
	var mu sync.Mutex
	builds := 0
	build := func(ctx context.Context) (json.RawMessage, error) {
		mu.Lock()
		builds++
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		return json.RawMessage(`[1]`), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.GetOrBuild(context.Background(), "/t1/bills", build)
			assert.NoError(t, err)
			assert.Equal(t, `[1]`, string(data))
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, builds)
}
