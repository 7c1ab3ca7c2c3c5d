package posthog

import (
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// Factory constructs the shared client
type Factory func(apiKey string, options Options) (Client, error)

// DefaultFactory builds clients with New
func DefaultFactory(httpClient *http.Client, logger *zap.Logger) Factory {
	return func(apiKey string, options Options) (Client, error) {
		return New(apiKey, options, httpClient, logger)
	}
}

// Guard owns the one analytics client of the process. It is created by the
// composition root and passed to whatever needs the client.
//
// Once a client exists it is never replaced or torn down, even if Ensure is
// later called with a different key or host.
type Guard struct {
	mu      sync.Mutex
	factory Factory
	client  Client
	logger  *zap.Logger
}

// NewGuard returns an uninitialized guard
func NewGuard(factory Factory, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{factory: factory, logger: logger}
}

// Ensure initializes the client unless apiKey is empty or a client already
// exists. Construction failures are logged and leave the guard uninitialized.
func (g *Guard) Ensure(apiKey, host string) {
	if apiKey == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return
	}

	client, err := g.factory(apiKey, Options{APIHost: host, PersonProfiles: PersonProfilesIdentifiedOnly})
	if err != nil {
		g.logger.Warn("analytics initialization skipped", zap.Error(err))
		return
	}

	g.client = client
	g.logger.Info("analytics client initialized", zap.String("api_host", host))
}

// Initialized reports whether the shared client exists
func (g *Guard) Initialized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client != nil
}

// Client returns the shared client, or nil before initialization
func (g *Guard) Client() Client {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client
}
