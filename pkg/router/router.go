package router

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrNotMounted is returned for operations that need a mounted router.
var ErrNotMounted = errors.New("router is not mounted")

// Options configures a Router.
type Options struct {
	// Origin is the absolute origin navigation destinations resolve
	// against, e.g. "https://app.example.com". Defaults to
	// "http://localhost".
	Origin string

	// History is the navigation environment. Defaults to a MemoryHistory
	// rooted at "/".
	History History

	// Document receives metadata side effects. Defaults to a
	// MemoryDocument.
	Document Document

	// Layouts is the generated layout manifest. Nil disables layout
	// resolution.
	Layouts LayoutManifest

	// NotFound renders when no route matches. Nil leaves the not-found
	// view to the consumer.
	NotFound RenderFunc

	// Logger receives operational messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// Resolved is the outcome of one route transition, published to OnChange.
type Resolved struct {
	// State is the load lifecycle position.
	State LoadState

	// Ctx is the route context for the resolved location. Always set.
	Ctx *RouteContext

	// Page and Layout are set when State is Loaded and a route matched.
	Page   *PageModule
	Layout *LayoutModule

	// NotFound reports that no route in the table matched.
	NotFound bool

	// Err is set when State is LoadFailed.
	Err error
}

// Router drives the resolution pipeline: it observes the location store,
// matches the route table, loads the matched page (and optional layout),
// applies metadata, and publishes the resolved state. One logical route
// resolution is in flight at a time; later navigations supersede earlier
// in-flight loads.
type Router struct {
	opts Options

	mu       sync.Mutex
	table    Table
	store    *LocationStore
	nav      *Navigator
	loader   *Loader
	current  *RouteContext
	onChange func(Resolved)
	unsub    func()
	mounted  bool
}

// New creates a router over the given table. Call Mount to start it.
func New(table Table, opts Options) *Router {
	if opts.Origin == "" {
		opts.Origin = "http://localhost"
	}
	if opts.History == nil {
		opts.History = NewMemoryHistory(Location{Pathname: "/"})
	}
	if opts.Document == nil {
		opts.Document = NewMemoryDocument()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Router{opts: opts, table: table}
}

// OnChange registers the consumer callback for resolved states. Must be
// set before Mount; changes are published in navigation order.
func (r *Router) OnChange(fn func(Resolved)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Mount subscribes to the navigation environment and resolves the initial
// location. The history subscription lives until Unmount.
func (r *Router) Mount() error {
	r.mu.Lock()
	if r.mounted {
		r.mu.Unlock()
		return errors.New("router is already mounted")
	}

	store := NewLocationStore(r.opts.History)
	nav, err := NewNavigator(r.opts.Origin, r.opts.History, store)
	if err != nil {
		store.Close()
		r.mu.Unlock()
		return err
	}

	loader := NewLoader(r.opts.Layouts, r.opts.Logger)
	r.store = store
	r.nav = nav
	r.loader = loader
	r.mounted = true
	r.mu.Unlock()

	loader.OnResult(r.handleResult)
	r.unsub = store.Subscribe(r.resolve)

	r.resolve(store.Current())
	return nil
}

// Unmount tears the router down: the location subscription is released
// and in-flight loads can no longer commit.
func (r *Router) Unmount() {
	r.mu.Lock()
	if !r.mounted {
		r.mu.Unlock()
		return
	}
	r.mounted = false
	store := r.store
	unsub := r.unsub
	loader := r.loader
	r.store = nil
	r.nav = nil
	r.unsub = nil
	r.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if store != nil {
		store.Close()
	}
	if loader != nil {
		loader.OnResult(nil)
	}
}

// Navigate performs a programmatic client-side transition.
func (r *Router) Navigate(to string) error {
	r.mu.Lock()
	nav := r.nav
	r.mu.Unlock()
	if nav == nil {
		return ErrNotMounted
	}
	return nav.Navigate(to)
}

// HandleClick is the anchor-interception entry point; see
// Navigator.HandleClick. Returns false when the router is unmounted.
func (r *Router) HandleClick(href string, ev Click) bool {
	r.mu.Lock()
	nav := r.nav
	r.mu.Unlock()
	if nav == nil {
		return false
	}
	return nav.HandleClick(href, ev)
}

// SwapTable replaces the route table with a fresh snapshot, wholesale, and
// re-resolves the current location against it. Watch-mode regeneration
// uses this; the old snapshot is never patched in place.
func (r *Router) SwapTable(table Table) {
	r.mu.Lock()
	r.table = table
	store := r.store
	r.mu.Unlock()

	if store != nil {
		r.resolve(store.Current())
	}
}

// Location returns the current location snapshot.
func (r *Router) Location() Location {
	r.mu.Lock()
	store := r.store
	r.mu.Unlock()
	if store == nil {
		return Location{Pathname: "/"}
	}
	return store.Current()
}

// WithContext installs the current route context on ctx for descendant
// consumers. Calling it before a route has resolved returns ctx unchanged.
func (r *Router) WithContext(ctx context.Context) context.Context {
	r.mu.Lock()
	rc := r.current
	r.mu.Unlock()
	if rc == nil {
		return ctx
	}
	return NewContext(ctx, rc)
}

// resolve runs the matching pipeline for a published location.
func (r *Router) resolve(loc Location) {
	r.mu.Lock()
	if !r.mounted {
		r.mu.Unlock()
		return
	}
	table := r.table
	loader := r.loader
	rc := &RouteContext{
		Pathname: loc.Pathname,
		Search:   loc.Search,
		Params:   Params{},
		Query:    ParseQuery(loc.Search),
		Navigate: r.Navigate,
	}
	r.current = rc
	r.mu.Unlock()

	match, err := table.Match(loc.Pathname)
	if err != nil {
		// Malformed percent-encoding in a matched parameter propagates
		// instead of being silently swallowed.
		r.opts.Logger.Error("route match failed", "pathname", loc.Pathname, "error", err)
		r.emit(Resolved{State: LoadFailed, Ctx: rc, Err: err})
		return
	}

	if match == nil {
		matchMissesTotal.Inc()
		res := Resolved{State: Loaded, Ctx: rc, NotFound: true}
		if r.opts.NotFound != nil {
			res.Page = &PageModule{Render: r.opts.NotFound}
		}
		r.emit(res)
		return
	}

	r.mu.Lock()
	rc.Params = match.Params
	r.mu.Unlock()

	loader.Load(context.Background(), match.Route)
}

// handleResult forwards committed load results, applying metadata on
// successful loads. Stale results were already discarded by the loader.
func (r *Router) handleResult(res LoadResult) {
	r.mu.Lock()
	rc := r.current
	mounted := r.mounted
	r.mu.Unlock()
	if !mounted {
		return
	}

	if res.State == Loaded && res.Page != nil {
		ApplyMeta(r.opts.Document, res.Page.Meta)
	}
	if res.State == LoadFailed {
		r.opts.Logger.Error("route load failed", "route", res.Route.Path, "error", res.Err)
	}

	r.emit(Resolved{
		State:  res.State,
		Ctx:    rc,
		Page:   res.Page,
		Layout: res.Layout,
		Err:    res.Err,
	})
}

// emit publishes to the consumer callback, if any.
func (r *Router) emit(res Resolved) {
	r.mu.Lock()
	fn := r.onChange
	r.mu.Unlock()
	if fn != nil {
		fn(res)
	}
}
