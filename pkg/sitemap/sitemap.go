// Package sitemap serves the site's hand-maintained sitemap.xml.
package sitemap

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"fmt"
	"regexp"
	"time"
)

// ContentType of the sitemap response
const ContentType = "application/xml"

//go:embed sitemap.xml
var document []byte

// Document returns the sitemap bytes
func Document() []byte {
	return bytes.Clone(document)
}

// URLSet is the sitemaps.org document root
type URLSet struct {
	XMLName xml.Name `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []URL    `xml:"url"`
}

// URL is a single sitemap entry
type URL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod"`
	Priority string `xml:"priority"`
}

var priorityPattern = regexp.MustCompile(`^[01]\.\d\d$`)

// Parse decodes and checks a sitemap: every entry needs a loc, an ISO-8601
// lastmod and a two-decimal priority.
func Parse(data []byte) (*URLSet, error) {
	var set URLSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("error parsing sitemap: %w", err)
	}
	if len(set.URLs) == 0 {
		return nil, fmt.Errorf("error parsing sitemap: no url entries")
	}

	for i, u := range set.URLs {
		if u.Loc == "" {
			return nil, fmt.Errorf("sitemap entry %d: missing loc", i)
		}
		if _, err := time.Parse(time.RFC3339, u.LastMod); err != nil {
			if _, err := time.Parse(time.DateOnly, u.LastMod); err != nil {
				return nil, fmt.Errorf("sitemap entry %d: invalid lastmod %q", i, u.LastMod)
			}
		}
		if !priorityPattern.MatchString(u.Priority) {
			return nil, fmt.Errorf("sitemap entry %d: invalid priority %q", i, u.Priority)
		}
	}

	return &set, nil
}
