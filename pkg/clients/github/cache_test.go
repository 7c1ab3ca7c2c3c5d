package github

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls   atomic.Int32
	stars   int
	err     error
	release chan struct{}
}

func (c *countingClient) GetRepoStats(ctx context.Context, repo string) (*RepoStats, error) {
	c.calls.Add(1)
	if c.release != nil {
		<-c.release
	}
	if c.err != nil {
		return nil, c.err
	}
	return &RepoStats{FullName: repo, Stars: c.stars}, nil
}

func TestCachedClient_ServesFromCacheUntilExpiry(t *testing.T) {
	upstream := &countingClient{stars: 10}
	cached := NewCachedClient(upstream, time.Minute, 0)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		stats, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
		require.NoError(t, err)
		assert.Equal(t, 10, stats.Stars)
	}
	assert.EqualValues(t, 1, upstream.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
	require.NoError(t, err)
	assert.EqualValues(t, 2, upstream.calls.Load())
}

func TestCachedClient_DoesNotCacheErrors(t *testing.T) {
	upstream := &countingClient{err: errors.New("boom")}
	cached := NewCachedClient(upstream, time.Minute, 0)

	_, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
	assert.Error(t, err)
	_, err = cached.GetRepoStats(context.Background(), "deco-cx/deco")
	assert.Error(t, err)

	assert.EqualValues(t, 2, upstream.calls.Load())
}

func TestCachedClient_CollapsesConcurrentLookups(t *testing.T) {
	upstream := &countingClient{stars: 7, release: make(chan struct{})}
	cached := NewCachedClient(upstream, 0, 0)

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stats, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
			if err == nil {
				results[i] = stats.Stars
			}
		}(i)
	}

	// let the goroutines pile up behind the in-flight request
	require.Eventually(t, func() bool { return upstream.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 1, upstream.calls.Load())
	close(upstream.release)
	wg.Wait()

	assert.LessOrEqual(t, upstream.calls.Load(), int32(5))
	for _, stars := range results {
		assert.Equal(t, 7, stars)
	}
}

func TestCachedClient_ReturnsCopies(t *testing.T) {
	cached := NewCachedClient(&countingClient{stars: 3}, time.Minute, 0)

	first, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
	require.NoError(t, err)
	first.Stars = 999

	second, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
	require.NoError(t, err)
	assert.Equal(t, 3, second.Stars)
}

// ctxClient blocks until release and fails if its context ends first
type ctxClient struct {
	calls   atomic.Int32
	release chan struct{}
}

func (c *ctxClient) GetRepoStats(ctx context.Context, repo string) (*RepoStats, error) {
	c.calls.Add(1)
	select {
	case <-c.release:
		return &RepoStats{FullName: repo, Stars: 42}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCachedClient_CallerCancelDoesNotFailOthers(t *testing.T) {
	upstream := &ctxClient{release: make(chan struct{})}
	cached := NewCachedClient(upstream, time.Minute, 5*time.Second)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := cached.GetRepoStats(ctxA, "deco-cx/deco")
		errA <- err
	}()
	require.Eventually(t, func() bool { return upstream.calls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		stats *RepoStats
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		stats, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
		resB <- result{stats, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(upstream.release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, 42, b.stats.Stars)
	assert.EqualValues(t, 1, upstream.calls.Load())
}

func TestCachedClient_FetchTimeout(t *testing.T) {
	upstream := &ctxClient{release: make(chan struct{})}
	cached := NewCachedClient(upstream, time.Minute, 10*time.Millisecond)

	_, err := cached.GetRepoStats(context.Background(), "deco-cx/deco")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
