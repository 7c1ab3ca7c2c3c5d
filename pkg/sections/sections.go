// Package sections holds the server-rendered blocks the site's pages are
// composed of. Each section takes an explicit props struct; zero-valued
// fields fall back to the values of the matching Default…Props constructor.
package sections

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// Empty renders nothing
var Empty templ.Component = templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// esc is shorthand for templ.EscapeString
func esc(s string) string {
	return templ.EscapeString(s)
}

// escURL sanitizes s for an href. Unsafe schemes and unparseable URLs become
// templ.FailedSanitizationURL.
func escURL(s string) string {
	s = strings.TrimSpace(s)
	if _, err := url.Parse(s); err != nil {
		return esc(string(templ.FailedSanitizationURL))
	}
	return esc(string(templ.URL(s)))
}
