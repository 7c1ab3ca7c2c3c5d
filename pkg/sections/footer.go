package sections

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// FooterLink is one footer navigation entry
type FooterLink struct {
	Label string
	Href  string
}

// FooterProps configures the page footer
type FooterProps struct {
	// Copyright may contain {year}, replaced with the current year.
	// default "© {year} deco.cx. All rights reserved."
	Copyright string
	// default: Roadmap, GitHub, Sitemap
	Links []FooterLink
	// default time.Now
	Now func() time.Time
}

// DefaultFooterProps returns the effective defaults
func DefaultFooterProps() FooterProps {
	return FooterProps{
		Copyright: "© {year} deco.cx. All rights reserved.",
		Links: []FooterLink{
			{Label: "Roadmap", Href: "/roadmap"},
			{Label: "GitHub", Href: "https://github.com/deco-cx/deco"},
			{Label: "Sitemap", Href: "/sitemap.xml"},
		},
		Now: time.Now,
	}
}

func (p FooterProps) withDefaults() FooterProps {
	d := DefaultFooterProps()
	p.Copyright = orDefault(p.Copyright, d.Copyright)
	if p.Links == nil {
		p.Links = d.Links
	}
	if p.Now == nil {
		p.Now = d.Now
	}
	return p
}

// CopyrightLine substitutes the year into the copyright template
func (p FooterProps) CopyrightLine() string {
	p = p.withDefaults()
	return strings.ReplaceAll(p.Copyright, "{year}", strconv.Itoa(p.Now().Year()))
}

// Footer renders the page footer
func Footer(props FooterProps) templ.Component {
	p := props.withDefaults()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<footer class="footer"><nav class="footer__links">`)
		for _, l := range p.Links {
			fmt.Fprintf(&b, `<a href="%s">%s</a>`, escURL(l.Href), esc(l.Label))
		}
		fmt.Fprintf(&b, `</nav><p class="footer__copyright">%s</p></footer>`, esc(p.CopyrightLine()))
		_, err := io.WriteString(w, b.String())
		return err
	})
}
