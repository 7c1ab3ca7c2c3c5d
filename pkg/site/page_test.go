package site

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decocms/website/pkg/sections"
)

func textSection(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "["+s+"]")
		return err
	})
}

func delayed(d time.Duration, value string) Loader[string] {
	return func(ctx context.Context) (string, error) {
		select {
		case <-time.After(d):
			return value, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPage_PreservesBlockOrder(t *testing.T) {
	page := Page{
		Layout: sections.LayoutProps{Title: "t"},
		Blocks: []Block{
			Bind[string]("slow", delayed(30*time.Millisecond, "one"), textSection),
			Static("static", textSection("two")),
			Bind[string]("fast", delayed(0, "three"), textSection),
		},
	}

	c, err := page.Resolve(context.Background())
	require.NoError(t, err)

	out := renderString(t, c)
	assert.Less(t, strings.Index(out, "[one]"), strings.Index(out, "[two]"))
	assert.Less(t, strings.Index(out, "[two]"), strings.Index(out, "[three]"))
}

func TestPage_LoadersRunConcurrently(t *testing.T) {
	var running, peak atomic.Int32
	loader := func(ctx context.Context) (string, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return "x", nil
	}

	page := Page{Blocks: []Block{
		Bind[string]("a", loader, textSection),
		Bind[string]("b", loader, textSection),
		Bind[string]("c", loader, textSection),
	}}

	_, err := page.Resolve(context.Background())
	require.NoError(t, err)
	assert.Greater(t, peak.Load(), int32(1))
}

func TestPage_LoaderErrorFailsPage(t *testing.T) {
	boom := errors.New("boom")
	page := Page{Blocks: []Block{
		Bind[string]("ok", delayed(time.Second, "never"), textSection),
		Bind[string]("roadmap", func(context.Context) (string, error) { return "", boom }, textSection),
	}}

	start := time.Now()
	_, err := page.Resolve(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "roadmap")
	assert.Less(t, time.Since(start), 500*time.Millisecond, "sibling loaders should be cancelled")
}

func TestPage_Empty(t *testing.T) {
	c, err := Page{}.Resolve(context.Background())
	require.NoError(t, err)
	assert.Contains(t, renderString(t, c), "<title>deco</title>")
}
