// Package site binds loaders to sections and resolves them into pages.
package site

import (
	"context"
	"fmt"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/decocms/website/pkg/sections"
)

// Loader produces the data a section renders
type Loader[T any] func(ctx context.Context) (T, error)

// Section renders loader output
type Section[T any] func(data T) templ.Component

// Block is a section together with the loader feeding it
type Block interface {
	Name() string
	Load(ctx context.Context) (templ.Component, error)
}

type boundBlock[T any] struct {
	name    string
	loader  Loader[T]
	section Section[T]
}

func (b boundBlock[T]) Name() string { return b.name }

func (b boundBlock[T]) Load(ctx context.Context) (templ.Component, error) {
	data, err := b.loader(ctx)
	if err != nil {
		return nil, err
	}
	return b.section(data), nil
}

// Bind pairs a loader with the section that renders its output
func Bind[T any](name string, loader Loader[T], section Section[T]) Block {
	return boundBlock[T]{name: name, loader: loader, section: section}
}

type staticBlock struct {
	name      string
	component templ.Component
}

func (b staticBlock) Name() string { return b.name }

func (b staticBlock) Load(context.Context) (templ.Component, error) { return b.component, nil }

// Static wraps a section that needs no loader
func Static(name string, component templ.Component) Block {
	return staticBlock{name: name, component: component}
}

// Page is an ordered list of blocks inside the document layout
type Page struct {
	Layout sections.LayoutProps
	Blocks []Block
}

// Resolve runs every loader concurrently and returns the rendered page in block
// order. The first loader error cancels the others and fails the page.
func (p Page) Resolve(ctx context.Context) (templ.Component, error) {
	components := make([]templ.Component, len(p.Blocks))

	g, gctx := errgroup.WithContext(ctx)
	for i, block := range p.Blocks {
		g.Go(func() error {
			c, err := block.Load(gctx)
			if err != nil {
				return fmt.Errorf("error loading block %s: %w", block.Name(), err)
			}
			components[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sections.Layout(p.Layout, components...), nil
}
