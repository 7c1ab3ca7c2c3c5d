package sections

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LayoutProps configures the document shell
type LayoutProps struct {
	Title       string // default "deco"
	Description string // default "The open-source CMS for high-performance sites."
	Lang        string // default "en"
}

// DefaultLayoutProps returns the effective defaults
func DefaultLayoutProps() LayoutProps {
	return LayoutProps{
		Title:       "deco",
		Description: "The open-source CMS for high-performance sites.",
		Lang:        "en",
	}
}

func (p LayoutProps) withDefaults() LayoutProps {
	d := DefaultLayoutProps()
	p.Title = orDefault(p.Title, d.Title)
	p.Description = orDefault(p.Description, d.Description)
	p.Lang = orDefault(p.Lang, d.Lang)
	return p
}

// Layout wraps body in the HTML document
func Layout(props LayoutProps, body ...templ.Component) templ.Component {
	p := props.withDefaults()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title><meta name="description" content="%s"></head><body>`,
			esc(p.Lang), esc(p.Title), esc(p.Description)); err != nil {
			return err
		}
		for _, c := range body {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
