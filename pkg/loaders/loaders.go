// Package loaders holds the per-request data functions bound to sections.
package loaders

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/decocms/website/pkg/clients/posthog"
	"github.com/decocms/website/pkg/models"
	"github.com/decocms/website/pkg/roadmap"
	"github.com/decocms/website/pkg/secrets"
	"github.com/decocms/website/pkg/site"
)

// Roadmap loads the roadmap features from provider
func Roadmap(provider roadmap.Provider) site.Loader[[]models.RoadmapFeature] {
	return func(ctx context.Context) ([]models.RoadmapFeature, error) {
		return provider.Features(ctx)
	}
}

// Analytics resolves the analytics key through keyRef on every request and
// makes sure the shared server-side client exists once a key is available.
// Resolution failures disable analytics for the request instead of failing it.
func Analytics(store secrets.Store, keyRef secrets.Ref, host string, guard *posthog.Guard, logger *zap.Logger) site.Loader[models.AnalyticsConfig] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context) (models.AnalyticsConfig, error) {
		key, err := keyRef.Resolve(ctx, store)
		if err != nil {
			if !errors.Is(err, secrets.ErrNotFound) {
				logger.Warn("failed to resolve analytics key", zap.Error(err))
			}
			return models.NewAnalyticsConfig("", host), nil
		}

		cfg := models.NewAnalyticsConfig(key, host)
		if guard != nil {
			guard.Ensure(cfg.Key, cfg.Host)
		}
		return cfg, nil
	}
}
