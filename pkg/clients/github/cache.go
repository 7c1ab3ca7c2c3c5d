package github

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cachedStats struct {
	stats     RepoStats
	expiresAt time.Time
}

// CachedClient memoizes successful lookups for a TTL and collapses concurrent
// lookups of the same repo into one upstream request. Failures are not cached.
type CachedClient struct {
	client  Client
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*cachedStats
}

// NewCachedClient wraps client. A zero ttl disables caching but keeps request
// collapsing. timeout bounds each upstream fetch; zero means no limit.
func NewCachedClient(client Client, ttl, timeout time.Duration) *CachedClient {
	return &CachedClient{
		client:  client,
		ttl:     ttl,
		timeout: timeout,
		now:     time.Now,
		entries: make(map[string]*cachedStats),
	}
}

func (c *CachedClient) GetRepoStats(ctx context.Context, repo string) (*RepoStats, error) {
	c.mu.RLock()
	entry, exists := c.entries[repo]
	c.mu.RUnlock()

	if exists {
		if c.now().Before(entry.expiresAt) {
			stats := entry.stats
			return &stats, nil
		}
		c.mu.Lock()
		delete(c.entries, repo)
		c.mu.Unlock()
	}

	ch := c.group.DoChan(repo, func() (any, error) {
		// shared by every caller waiting on repo, so no single caller may cancel it
		fetchCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, c.timeout)
			defer cancel()
		}

		stats, err := c.client.GetRepoStats(fetchCtx, repo)
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[repo] = &cachedStats{stats: *stats, expiresAt: c.now().Add(c.ttl)}
			c.mu.Unlock()
		}
		return *stats, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		stats := res.Val.(RepoStats)
		return &stats, nil
	}
}
