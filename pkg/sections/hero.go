package sections

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HeroProps configures the landing page hero
type HeroProps struct {
	Title    string // default "Build websites that convert"
	Subtitle string // default "The open-source CMS for high-performance sites."
	CTALabel string // default "Talk to us"
	CTAHref  string // default "#contact"
}

// DefaultHeroProps returns the effective defaults
func DefaultHeroProps() HeroProps {
	return HeroProps{
		Title:    "Build websites that convert",
		Subtitle: "The open-source CMS for high-performance sites.",
		CTALabel: "Talk to us",
		CTAHref:  "#contact",
	}
}

func (p HeroProps) withDefaults() HeroProps {
	d := DefaultHeroProps()
	p.Title = orDefault(p.Title, d.Title)
	p.Subtitle = orDefault(p.Subtitle, d.Subtitle)
	p.CTALabel = orDefault(p.CTALabel, d.CTALabel)
	p.CTAHref = orDefault(p.CTAHref, d.CTAHref)
	return p
}

// Hero renders the top-of-page banner. stars is placed next to the call to action.
func Hero(props HeroProps, stars templ.Component) templ.Component {
	p := props.withDefaults()
	if stars == nil {
		stars = Empty
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section class="hero"><h1>%s</h1><p class="hero__subtitle">%s</p><div class="hero__actions"><a class="button button--primary" href="%s">%s</a>`,
			esc(p.Title), esc(p.Subtitle), escURL(p.CTAHref), esc(p.CTALabel)); err != nil {
			return err
		}
		if err := stars.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></section>`)
		return err
	})
}
