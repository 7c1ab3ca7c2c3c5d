// Package roadmap provides the features listed on the public roadmap page.
package roadmap

import (
	"context"
	"time"

	"github.com/decocms/website/pkg/models"
)

// Provider returns roadmap features in display order. Consumers must not
// assume more than that; the result may be empty.
type Provider interface {
	Features(ctx context.Context) ([]models.RoadmapFeature, error)
}

// StaticProvider serves a fixed, in-memory list
type StaticProvider struct {
	features []models.RoadmapFeature
}

// NewStaticProvider returns the provider backed by the built-in list
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{features: builtinFeatures}
}

// Features returns a copy of the list, so callers cannot alter the dataset
func (p *StaticProvider) Features(_ context.Context) ([]models.RoadmapFeature, error) {
	out := make([]models.RoadmapFeature, len(p.features))
	copy(out, p.features)
	return out, nil
}

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var builtinFeatures = []models.RoadmapFeature{
	{
		ID:          1,
		Title:       "AI-assisted section generation",
		Description: "Describe a section in plain language and get a typed, editable block ready for the page editor.",
		Status:      models.StatusInProgress,
		Upvotes:     142,
		CreatedAt:   day("2025-01-15T10:00:00Z"),
		UpdatedAt:   day("2025-03-02T16:30:00Z"),
	},
	{
		ID:          2,
		Title:       "Visual A/B testing",
		Description: "Create page variants from the admin and split traffic without touching code.",
		Status:      models.StatusUnderReview,
		Upvotes:     98,
		CreatedAt:   day("2025-01-20T09:00:00Z"),
		UpdatedAt:   day("2025-02-18T11:45:00Z"),
	},
	{
		ID:          3,
		Title:       "Multi-language content",
		Description: "Manage translated versions of every block with per-locale fallbacks.",
		Status:      models.StatusPlanned,
		Upvotes:     87,
		CreatedAt:   day("2025-02-01T14:20:00Z"),
		UpdatedAt:   day("2025-02-01T14:20:00Z"),
	},
	{
		ID:          4,
		Title:       "Edge caching for loaders",
		Description: "Cache loader results at the edge with stale-while-revalidate controls per loader.",
		Status:      models.StatusReleased,
		Upvotes:     203,
		CreatedAt:   day("2024-10-05T08:00:00Z"),
		UpdatedAt:   day("2025-01-10T18:00:00Z"),
	},
	{
		ID:          5,
		Title:       "Git-based content history",
		Description: "Every CMS change becomes a commit you can diff, review and revert.",
		Status:      models.StatusPlanned,
		Upvotes:     64,
		CreatedAt:   day("2025-02-12T12:00:00Z"),
		UpdatedAt:   day("2025-02-12T12:00:00Z"),
	},
	{
		ID:          6,
		Title:       "Analytics dashboard",
		Description: "Page and section level performance metrics inside the admin.",
		Status:      models.StatusInProgress,
		Upvotes:     119,
		CreatedAt:   day("2024-12-01T10:30:00Z"),
		UpdatedAt:   day("2025-03-01T09:15:00Z"),
	},
}
