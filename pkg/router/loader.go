package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies loader spans.
const tracerName = "wayfind/router"

// ErrMissingRender marks a page module without a render function. The
// wrapping error names the offending file.
var ErrMissingRender = errors.New("page module has no render function")

// LoadState describes where a route transition is in its load lifecycle.
type LoadState int

const (
	// Loading is the initial state and re-entered on every route change.
	Loading LoadState = iota

	// Loaded means the page module (and any resolved layout) is available.
	Loaded

	// LoadFailed means the load rejected or the module was unusable.
	LoadFailed
)

// String returns the state name.
func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "error"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// LoadResult is one observable step of a route load.
type LoadResult struct {
	State  LoadState
	Route  *Route
	Page   *PageModule
	Layout *LayoutModule
	Err    error
}

// Loader resolves matched routes to their page module and optional layout
// module. It guarantees at most one committed result per route transition:
// when the matched route changes again before a prior load resolves, the
// prior result is discarded and never reaches consumers. Cancellation is
// advisory: the in-flight load is not interrupted, its result is checked
// against the current generation at commit time and dropped if stale.
type Loader struct {
	layouts LayoutManifest
	logger  *slog.Logger
	tracer  trace.Tracer

	mu         sync.Mutex
	generation uint64
	onResult   func(LoadResult)
	queue      []LoadResult
	draining   bool
}

// NewLoader creates a loader resolving layout names against the given
// manifest. A nil manifest disables layout support, which is the simpler
// of the two loader shapes.
func NewLoader(layouts LayoutManifest, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		layouts: layouts,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// OnResult sets the consumer callback. Results arrive in commit order;
// stale results never arrive at all.
func (l *Loader) OnResult(fn func(LoadResult)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onResult = fn
}

// Load starts resolving the route's page module. It immediately emits a
// Loading result, then Loaded or LoadFailed once the import settles.
// If a newer Load superseded this one, nothing more is emitted for it.
func (l *Loader) Load(ctx context.Context, route *Route) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.queue = append(l.queue, LoadResult{State: Loading, Route: route})
	l.mu.Unlock()

	navigationsTotal.Inc()
	l.drain()

	go l.run(ctx, gen, route)
}

// run performs the import chain and commits the outcome.
func (l *Loader) run(ctx context.Context, gen uint64, route *Route) {
	start := time.Now()
	ctx, span := l.tracer.Start(ctx, "router.load",
		trace.WithAttributes(
			attribute.String("route.path", route.Path),
			attribute.String("route.file", route.File),
		))
	defer span.End()

	page, layout, err := l.resolve(ctx, route)
	loadDurationSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		loadErrorsTotal.Inc()
		l.commit(gen, LoadResult{State: LoadFailed, Route: route, Err: err})
		return
	}

	l.commit(gen, LoadResult{State: Loaded, Route: route, Page: page, Layout: layout})
}

// resolve imports the page module, validates it, and resolves its layout.
func (l *Loader) resolve(ctx context.Context, route *Route) (*PageModule, *LayoutModule, error) {
	if route.ImportPage == nil {
		return nil, nil, fmt.Errorf("route %s: no page loader", route.File)
	}

	page, err := route.ImportPage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading page %s: %w", route.File, err)
	}
	if page == nil || page.Render == nil {
		return nil, nil, fmt.Errorf("page %s: %w", route.File, ErrMissingRender)
	}

	layout, err := l.resolveLayout(ctx, route, page)
	if err != nil {
		return nil, nil, err
	}

	return page, layout, nil
}

// resolveLayout looks up the page's layout selector in the manifest.
// An unresolvable name is non-fatal: it is logged and the page renders
// without a layout. A layout import that rejects is a load failure.
func (l *Loader) resolveLayout(ctx context.Context, route *Route, page *PageModule) (*LayoutModule, error) {
	if page.Layout == nil || l.layouts == nil {
		return nil, nil
	}

	name, err := page.Layout.selectLayout()
	if err != nil {
		l.logger.Debug("layout selector failed, rendering without layout",
			"route", route.Path, "error", err)
		return nil, nil
	}
	if name == "" {
		return nil, nil
	}

	loadLayout, ok := l.layouts[name]
	if !ok {
		l.logger.Warn("unknown layout name, rendering without layout",
			"route", route.Path, "layout", name)
		return nil, nil
	}

	layout, err := loadLayout(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading layout %q for %s: %w", name, route.File, err)
	}
	return layout, nil
}

// commit sequences a result for delivery unless a newer Load superseded
// its generation. The staleness check and the queue append happen in one
// critical section, so a result found current here can never be delivered
// after a superseding navigation's Loading result.
func (l *Loader) commit(gen uint64, res LoadResult) {
	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		staleLoadsDiscardedTotal.Inc()
		l.logger.Debug("discarding stale load result",
			"route", res.Route.Path, "state", res.State.String())
		return
	}
	l.queue = append(l.queue, res)
	l.mu.Unlock()

	l.drain()
}

// drain delivers queued results in sequence order. Only one drainer runs
// at a time; callers finding one active hand their results off to it. The
// callback is invoked without the lock held, so OnResult callbacks may
// call Load re-entrantly.
func (l *Loader) drain() {
	l.mu.Lock()
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	for len(l.queue) > 0 {
		res := l.queue[0]
		l.queue = l.queue[1:]
		emit := l.onResult
		l.mu.Unlock()
		if emit != nil {
			emit(res)
		}
		l.mu.Lock()
	}
	l.draining = false
	l.mu.Unlock()
}

// LoadPage is the simpler loader shape: it resolves only the page module,
// synchronously to the caller, and applies metadata eagerly as part of the
// import chain. It has no layout support and no supersede tracking; the
// caller owns any staleness concerns.
func LoadPage(ctx context.Context, route *Route, doc Document) (*PageModule, error) {
	if route.ImportPage == nil {
		return nil, fmt.Errorf("route %s: no page loader", route.File)
	}

	page, err := route.ImportPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading page %s: %w", route.File, err)
	}
	if page == nil || page.Render == nil {
		return nil, fmt.Errorf("page %s: %w", route.File, ErrMissingRender)
	}

	ApplyMeta(doc, page.Meta)
	return page, nil
}
