// Package stars implements the GitHub star counter island.
//
// A Counter is mounted per render. Every non-empty input change moves it to
// Loading under a new sequence number and issues one fetch; a response is only
// applied if its sequence number is still the current one, so a slow response
// for an old repo can never overwrite a newer one.
package stars

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/decocms/website/pkg/clients/github"
	"github.com/decocms/website/pkg/models"
)

// State of a Counter
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is a consistent view of a Counter
type Snapshot struct {
	State State
	Repo  string
	Seq   uint64
	Stars int // valid only when State is Loaded
}

// View converts the snapshot into the island's view model
func (s Snapshot) View() models.RepoStats {
	view := models.RepoStats{Loading: s.State == Loading}
	if s.State == Loaded {
		stars := s.Stars
		view.Stars = &stars
	}
	return view
}

// Counter is the star counter state machine
type Counter struct {
	client github.Client
	logger *zap.Logger

	mu      sync.Mutex
	state   State
	repo    string
	stars   int
	seq     uint64
	settled chan struct{} // closed when the current sequence resolves
}

// NewCounter returns an Idle counter
func NewCounter(client github.Client, logger *zap.Logger) *Counter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Counter{client: client, logger: logger}
}

// InputChanged starts a fetch for repo and returns its sequence number. An
// empty repo leaves the counter untouched.
func (c *Counter) InputChanged(ctx context.Context, repo string) uint64 {
	c.mu.Lock()
	if repo == "" {
		seq := c.seq
		c.mu.Unlock()
		return seq
	}
	c.seq++
	seq := c.seq
	// wake waiters on the superseded fetch so they move to the new one
	if c.state == Loading && c.settled != nil {
		close(c.settled)
	}
	c.state = Loading
	c.repo = repo
	c.stars = 0
	c.settled = make(chan struct{})
	c.mu.Unlock()

	go c.fetch(ctx, seq, repo)
	return seq
}

func (c *Counter) fetch(ctx context.Context, seq uint64, repo string) {
	stats, err := c.client.GetRepoStats(ctx, repo)
	c.resolve(seq, stats, err)
}

// resolve applies a fetch result. It reports whether the result was applied.
func (c *Counter) resolve(seq uint64, stats *github.RepoStats, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq || c.state != Loading {
		c.logger.Debug("discarding stale star count", zap.Uint64("seq", seq), zap.Uint64("current", c.seq))
		return false
	}

	if err != nil {
		c.state = Failed
		c.logger.Warn("failed to fetch GitHub stars", zap.String("repo", c.repo), zap.Error(err))
	} else {
		c.state = Loaded
		c.stars = stats.Stars
	}
	close(c.settled)
	return true
}

// Snapshot returns the current state
func (c *Counter) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Repo: c.repo, Seq: c.seq, Stars: c.stars}
}

// Await blocks until the latest fetch resolves or ctx is done, then returns
// the state at that point. An Idle counter returns immediately.
func (c *Counter) Await(ctx context.Context) (Snapshot, error) {
	for {
		c.mu.Lock()
		ch := c.settled
		c.mu.Unlock()

		if ch == nil {
			return c.Snapshot(), nil
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return c.Snapshot(), ctx.Err()
		}

		c.mu.Lock()
		current := c.settled
		c.mu.Unlock()
		// a newer input arrived while waiting
		if current == ch {
			return c.Snapshot(), nil
		}
	}
}
