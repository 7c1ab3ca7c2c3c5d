package sections

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/decocms/website/pkg/models"
)

// RoadmapProps configures the roadmap section
type RoadmapProps struct {
	Title        string // default "Roadmap"
	Description  string // default "What we're building next. Upvote what matters to you."
	EmptyMessage string // default "Nothing on the roadmap yet."
}

// DefaultRoadmapProps returns the effective defaults
func DefaultRoadmapProps() RoadmapProps {
	return RoadmapProps{
		Title:        "Roadmap",
		Description:  "What we're building next. Upvote what matters to you.",
		EmptyMessage: "Nothing on the roadmap yet.",
	}
}

func (p RoadmapProps) withDefaults() RoadmapProps {
	d := DefaultRoadmapProps()
	p.Title = orDefault(p.Title, d.Title)
	p.Description = orDefault(p.Description, d.Description)
	p.EmptyMessage = orDefault(p.EmptyMessage, d.EmptyMessage)
	return p
}

// statusSlug turns "In Progress" into "in-progress"
func statusSlug(s models.FeatureStatus) string {
	return strings.ToLower(strings.ReplaceAll(string(s), " ", "-"))
}

// Roadmap renders features grouped by status. Within a group the provider's
// order is kept; features with an unknown status are not shown.
func Roadmap(props RoadmapProps, features []models.RoadmapFeature) templ.Component {
	p := props.withDefaults()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<section class="roadmap" id="roadmap"><h2>%s</h2><p>%s</p>`, esc(p.Title), esc(p.Description))

		if len(features) == 0 {
			fmt.Fprintf(&b, `<p class="roadmap__empty">%s</p></section>`, esc(p.EmptyMessage))
			_, err := io.WriteString(w, b.String())
			return err
		}

		for _, status := range models.FeatureStatuses {
			var group []models.RoadmapFeature
			for _, f := range features {
				if f.Status == status {
					group = append(group, f)
				}
			}
			if len(group) == 0 {
				continue
			}

			fmt.Fprintf(&b, `<div class="roadmap__column" data-status="%s"><h3>%s</h3><ul>`, statusSlug(status), esc(string(status)))
			for _, f := range group {
				fmt.Fprintf(&b,
					`<li class="roadmap__feature" data-id="%d"><h4>%s</h4><p>%s</p><span class="roadmap__upvotes">%d upvotes</span><time datetime="%s">%s</time></li>`,
					f.ID, esc(f.Title), esc(f.Description), f.Upvotes,
					f.UpdatedAt.UTC().Format("2006-01-02"), f.UpdatedAt.UTC().Format("Jan 2, 2006"))
			}
			b.WriteString(`</ul></div>`)
		}

		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
