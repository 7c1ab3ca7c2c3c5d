package sections

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/decocms/website/pkg/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

// parse renders c inside a body so fragments parse the same way they would in a page
func parse(t *testing.T, c templ.Component) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(render(t, c)))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestHero_Defaults(t *testing.T) {
	doc := parse(t, Hero(HeroProps{}, nil))

	h1 := findAll(doc, byTag("h1"))
	require.Len(t, h1, 1)
	assert.Equal(t, DefaultHeroProps().Title, text(h1[0]))

	links := findAll(doc, byClass("button--primary"))
	require.Len(t, links, 1)
	assert.Equal(t, "#contact", attr(links[0], "href"))
}

func TestHero_EscapesAndEmbedsStars(t *testing.T) {
	island := GitHubStarsIsland(GitHubStarsProps{})
	out := render(t, Hero(HeroProps{Title: `<script>alert(1)</script>`}, island))

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `data-island="github-stars"`)
}

func TestHrefsRejectUnsafeSchemes(t *testing.T) {
	for _, href := range []string{"javascript:alert(1)", " JavaScript:alert(1)", "data:text/html,<b>x</b>"} {
		hero := parse(t, Hero(HeroProps{CTAHref: href}, nil))
		cta := findAll(hero, byClass("button--primary"))
		require.Len(t, cta, 1)
		assert.Equal(t, string(templ.FailedSanitizationURL), attr(cta[0], "href"), href)

		footer := parse(t, Footer(FooterProps{Links: []FooterLink{{Label: "x", Href: href}}}))
		links := findAll(footer, byTag("a"))
		require.Len(t, links, 1)
		assert.Equal(t, string(templ.FailedSanitizationURL), attr(links[0], "href"), href)
	}

	footer := parse(t, Footer(FooterProps{Links: []FooterLink{{Label: "Docs", Href: "https://deco.cx/docs?a=1&b=2"}}}))
	assert.Equal(t, "https://deco.cx/docs?a=1&b=2", attr(findAll(footer, byTag("a"))[0], "href"))
}

func TestFooter_YearSubstitution(t *testing.T) {
	fixed := func() time.Time { return time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC) }

	props := FooterProps{Now: fixed}
	assert.Equal(t, "© 2031 deco.cx. All rights reserved.", props.CopyrightLine())

	doc := parse(t, Footer(FooterProps{Copyright: "{year}–{year} Acme", Now: fixed}))
	p := findAll(doc, byClass("footer__copyright"))
	require.Len(t, p, 1)
	assert.Equal(t, "2031–2031 Acme", text(p[0]))

	links := findAll(doc, byTag("a"))
	assert.Len(t, links, len(DefaultFooterProps().Links))
}

func TestFooter_ExplicitEmptyLinks(t *testing.T) {
	doc := parse(t, Footer(FooterProps{Links: []FooterLink{}}))
	assert.Empty(t, findAll(doc, byTag("a")))
}

func TestRoadmap_GroupsByStatus(t *testing.T) {
	features := []models.RoadmapFeature{
		{ID: 1, Title: "Alpha", Status: models.StatusPlanned, Upvotes: 3},
		{ID: 2, Title: "Beta", Status: models.StatusReleased, Upvotes: 1},
		{ID: 3, Title: "Gamma", Status: models.StatusPlanned, Upvotes: 9},
		{ID: 4, Title: "Delta", Status: models.StatusInProgress},
	}

	doc := parse(t, Roadmap(RoadmapProps{}, features))

	columns := findAll(doc, byClass("roadmap__column"))
	var statuses []string
	for _, c := range columns {
		statuses = append(statuses, attr(c, "data-status"))
	}
	assert.Equal(t, []string{"in-progress", "planned", "released"}, statuses)

	planned := findAll(columns[1], byTag("h4"))
	require.Len(t, planned, 2)
	assert.Equal(t, "Alpha", text(planned[0]))
	assert.Equal(t, "Gamma", text(planned[1]))

	upvotes := findAll(columns[1], byClass("roadmap__upvotes"))
	assert.Equal(t, "9 upvotes", text(upvotes[1]))
}

func TestRoadmap_Empty(t *testing.T) {
	doc := parse(t, Roadmap(RoadmapProps{EmptyMessage: "Soon."}, nil))

	empty := findAll(doc, byClass("roadmap__empty"))
	require.Len(t, empty, 1)
	assert.Equal(t, "Soon.", text(empty[0]))
	assert.Empty(t, findAll(doc, byClass("roadmap__column")))
}

func TestContactForm(t *testing.T) {
	doc := parse(t, ContactForm(ContactFormProps{ButtonLabel: "Join"}))

	forms := findAll(doc, byTag("form"))
	require.Len(t, forms, 1)
	assert.Equal(t, "/api/contacts", attr(forms[0], "action"))

	var names []string
	for _, in := range findAll(forms[0], byTag("input")) {
		names = append(names, attr(in, "name"))
	}
	assert.ElementsMatch(t, []string{"email", "firstName", "lastName"}, names)

	buttons := findAll(forms[0], byTag("button"))
	require.Len(t, buttons, 1)
	assert.Equal(t, "Join", text(buttons[0]))
}

func TestGitHubStarsIsland(t *testing.T) {
	doc := parse(t, GitHubStarsIsland(GitHubStarsProps{Repo: "deco-cx/apps"}))

	mounts := findAll(doc, func(n *html.Node) bool { return attr(n, "data-island") == "github-stars" })
	require.Len(t, mounts, 1)
	assert.Equal(t, "/islands/github-stars?repo=deco-cx%2Fapps", attr(mounts[0], "data-src"))
	assert.Nil(t, mounts[0].FirstChild)
}

func TestAnalytics(t *testing.T) {
	assert.Empty(t, render(t, Analytics(models.NewAnalyticsConfig("", ""))))

	out := render(t, Analytics(models.NewAnalyticsConfig("phc_</script>", "")))
	assert.Contains(t, out, `"api_host":"https://us.i.posthog.com"`)
	assert.Contains(t, out, `"person_profiles":"identified_only"`)
	assert.Contains(t, out, `if (!window.posthog)`)
	assert.Equal(t, 1, strings.Count(out, "</script>"), "key must not be able to close the script tag")
}

func TestLayout(t *testing.T) {
	doc := parse(t, Layout(LayoutProps{Title: "Roadmap | deco"}, Hero(HeroProps{}, nil), Footer(FooterProps{})))

	titles := findAll(doc, byTag("title"))
	require.Len(t, titles, 1)
	assert.Equal(t, "Roadmap | deco", text(titles[0]))

	assert.Len(t, findAll(doc, byClass("hero")), 1)
	assert.Len(t, findAll(doc, byClass("footer")), 1)
	assert.Equal(t, "en", attr(findAll(doc, byTag("html"))[0], "lang"))
}
