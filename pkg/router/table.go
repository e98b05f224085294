package router

import (
	"context"
	"fmt"
)

// View is whatever the host application renders for a page. The router
// never inspects it; it only carries it from loaded modules to consumers.
type View = any

// RenderFunc renders a page for the current route context.
type RenderFunc func(rc *RouteContext) View

// LayoutRenderFunc wraps page content in a layout.
type LayoutRenderFunc func(rc *RouteContext, children View) View

// PageMeta carries the display metadata a page module may declare.
type PageMeta struct {
	Title       string
	Description string
}

// LayoutSelector names the layout a page wants: either a literal LayoutName
// or a LayoutFunc evaluated once per load.
type LayoutSelector interface {
	selectLayout() (string, error)
}

// LayoutName is a literal layout selector.
type LayoutName string

func (n LayoutName) selectLayout() (string, error) {
	return string(n), nil
}

// LayoutFunc is a layout selector computed at load time. A panic during
// evaluation is treated as "no layout".
type LayoutFunc func() string

func (f LayoutFunc) selectLayout() (name string, err error) {
	defer func() {
		if r := recover(); r != nil {
			name = ""
			err = fmt.Errorf("layout selector panicked: %v", r)
		}
	}()
	return f(), nil
}

// PageModule is a loaded page unit. Render is required; Meta and Layout
// are optional.
type PageModule struct {
	Render RenderFunc
	Meta   *PageMeta
	Layout LayoutSelector
}

// LayoutModule is a loaded layout unit.
type LayoutModule struct {
	Render LayoutRenderFunc
}

// PageLoader asynchronously resolves a page module.
type PageLoader func(ctx context.Context) (*PageModule, error)

// LayoutLoader asynchronously resolves a layout module.
type LayoutLoader func(ctx context.Context) (*LayoutModule, error)

// LayoutManifest maps layout names to their loaders. It is produced by the
// generator and treated as read-only at runtime.
type LayoutManifest map[string]LayoutLoader

// Route binds one page file to a URL pattern. Routes are produced by the
// generated manifest and are read-only at runtime.
type Route struct {
	// File is the page's source path relative to the pages directory.
	File string

	// Path is the URL pattern in router notation (e.g. "/users/:id").
	Path string

	// Segments is the parsed pattern the matcher walks.
	Segments []Segment

	// ImportPage resolves the page module.
	ImportPage PageLoader
}

// Match is a successful table lookup.
type Match struct {
	Route  *Route
	Params Params
}

// Table is the ordered route table. Order establishes match priority:
// the first route producing a successful match wins. The generator sorts
// routes by path before emitting a table; hand-built tables keep whatever
// order the caller supplies. A Table is immutable after construction;
// watch-mode regeneration builds a fresh Table and swaps it wholesale.
type Table struct {
	routes []Route
}

// NewTable builds a table from routes, preserving their order.
func NewTable(routes []Route) Table {
	copied := make([]Route, len(routes))
	copy(copied, routes)
	return Table{routes: copied}
}

// Len returns the number of routes.
func (t Table) Len() int {
	return len(t.routes)
}

// Routes returns the routes in table order.
func (t Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Match finds the first route matching pathname in table order. A nil
// match with nil error means no route matched. Percent-decode failures
// abort the whole lookup with an error.
func (t Table) Match(pathname string) (*Match, error) {
	for i := range t.routes {
		params, ok, err := MatchSegments(t.routes[i].Segments, pathname)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Match{Route: &t.routes[i], Params: params}, nil
		}
	}
	return nil, nil
}
