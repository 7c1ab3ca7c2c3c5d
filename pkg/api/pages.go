package api

import (
	"github.com/a-h/templ"

	"github.com/decocms/website/pkg/config"
	"github.com/decocms/website/pkg/loaders"
	"github.com/decocms/website/pkg/models"
	"github.com/decocms/website/pkg/roadmap"
	"github.com/decocms/website/pkg/sections"
	"github.com/decocms/website/pkg/site"
)

// Pages holds the routed page definitions
type Pages struct {
	Landing site.Page
	Roadmap site.Page
}

// NewPages composes the site pages. analytics is bound on every page.
func NewPages(cfg config.SiteConfig, provider roadmap.Provider, analytics site.Loader[models.AnalyticsConfig]) Pages {
	analyticsBlock := site.Bind[models.AnalyticsConfig]("analytics", analytics, sections.Analytics)
	footer := site.Static("footer", sections.Footer(sections.FooterProps{}))

	landing := site.Page{
		Layout: sections.LayoutProps{Title: cfg.Name},
		Blocks: []site.Block{
			site.Static("hero", sections.Hero(sections.HeroProps{},
				sections.GitHubStarsIsland(sections.GitHubStarsProps{Repo: cfg.GitHubRepo}))),
			site.Static("contact", sections.ContactForm(sections.ContactFormProps{})),
			footer,
			analyticsBlock,
		},
	}

	roadmapPage := site.Page{
		Layout: sections.LayoutProps{Title: "Roadmap | " + cfg.Name},
		Blocks: []site.Block{
			site.Bind[[]models.RoadmapFeature]("roadmap", loaders.Roadmap(provider), func(features []models.RoadmapFeature) templ.Component {
				return sections.Roadmap(sections.RoadmapProps{}, features)
			}),
			footer,
			analyticsBlock,
		},
	}

	return Pages{Landing: landing, Roadmap: roadmapPage}
}
