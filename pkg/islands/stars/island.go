package stars

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Island renders the star count of a loaded snapshot and nothing otherwise
func Island(snap Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		view := snap.View()
		if view.Stars == nil {
			return nil
		}
		_, err := fmt.Fprintf(w,
			`<a class="github-stars" href="https://github.com/%s" target="_blank" rel="noopener"><span aria-hidden="true">&#9733;</span> <span class="github-stars__count">%s</span></a>`,
			templ.EscapeString(snap.Repo), templ.EscapeString(FormatCount(view.Stars)))
		return err
	})
}
