package sections

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/decocms/website/pkg/models"
)

// GitHubStarsProps configures the star counter island mount point
type GitHubStarsProps struct {
	Repo     string // default "deco-cx/deco"
	Endpoint string // default "/islands/github-stars"
}

// DefaultGitHubStarsProps returns the effective defaults
func DefaultGitHubStarsProps() GitHubStarsProps {
	return GitHubStarsProps{Repo: "deco-cx/deco", Endpoint: "/islands/github-stars"}
}

func (p GitHubStarsProps) withDefaults() GitHubStarsProps {
	d := DefaultGitHubStarsProps()
	p.Repo = orDefault(p.Repo, d.Repo)
	p.Endpoint = orDefault(p.Endpoint, d.Endpoint)
	return p
}

// GitHubStarsIsland renders an empty mount point that the browser fills with
// the fragment served at Endpoint. Failures leave it empty.
func GitHubStarsIsland(props GitHubStarsProps) templ.Component {
	p := props.withDefaults()
	src := p.Endpoint + "?repo=" + url.QueryEscape(p.Repo)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<span data-island="github-stars" data-src="%s"></span>`+
				`<script>document.querySelectorAll('[data-island="github-stars"]:not([data-mounted])').forEach(function(el){`+
				`el.dataset.mounted="1";fetch(el.dataset.src).then(function(r){return r.ok?r.text():""})`+
				`.then(function(html){el.innerHTML=html}).catch(function(){})})</script>`,
			esc(src))
		return err
	})
}

type analyticsOptions struct {
	APIHost        string `json:"api_host"`
	PersonProfiles string `json:"person_profiles"`
}

// Analytics renders the PostHog bootstrap. It renders nothing when cfg has no
// key, and the script itself skips init when window.posthog already exists.
func Analytics(cfg models.AnalyticsConfig) templ.Component {
	if !cfg.Enabled() {
		return Empty
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// json.Marshal escapes <, > and & so the values are safe inside <script>
		key, err := json.Marshal(cfg.Key)
		if err != nil {
			return err
		}
		opts, err := json.Marshal(analyticsOptions{APIHost: cfg.Host, PersonProfiles: "identified_only"})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w,
			`<script type="module">import posthog from "https://esm.sh/posthog-js@1";`+
				`if (!window.posthog) { posthog.init(%s, %s); window.posthog = posthog; }</script>`,
			key, opts)
		return err
	})
}
