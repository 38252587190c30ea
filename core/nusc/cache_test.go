package nusc

import (
	"context"
	"sync"
	"testing"
	"time"

	"nuscenes-devkit/core/nusc/nusctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SharesSnapshot(t *testing.T) {
	root := nusctest.New(nusctest.Options{}).Write(t)
	obs := newRecordingObserver()
	cache := NewCache(time.Minute, WithObserver(obs))

	var wg sync.WaitGroup
	results := make([]*Tables, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables, err := cache.Get(context.Background(), nusctest.Version, root)
			assert.NoError(t, err)
			results[i] = tables
		}()
	}
	wg.Wait()

	for _, tables := range results {
		assert.Same(t, results[0], tables)
	}
	assert.Equal(t, 1, obs.stage("load"))
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Invalidate(t *testing.T) {
	root := nusctest.New(nusctest.Options{}).Write(t)
	cache := NewCache(0)

	first, err := cache.Get(context.Background(), nusctest.Version, root)
	require.NoError(t, err)
	again, err := cache.Get(context.Background(), nusctest.Version, root)
	require.NoError(t, err)
	assert.Same(t, first, again)

	cache.Invalidate(nusctest.Version, root)
	rebuilt, err := cache.Get(context.Background(), nusctest.Version, root)
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
}

func TestCache_Expiry(t *testing.T) {
	root := nusctest.New(nusctest.Options{}).Write(t)
	cache := NewCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	first, err := cache.Get(context.Background(), nusctest.Version, root)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	fresh, err := cache.Get(context.Background(), nusctest.Version, root)
	require.NoError(t, err)
	assert.Same(t, first, fresh)

	now = now.Add(time.Minute)
	expired, err := cache.Get(context.Background(), nusctest.Version, root)
	require.NoError(t, err)
	assert.NotSame(t, first, expired)
}

func TestCache_ErrorNotCached(t *testing.T) {
	cache := NewCache(time.Minute)
	_, err := cache.Get(context.Background(), "v1.0-missing", t.TempDir())
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	assert.Equal(t, 0, cache.Len())
}
