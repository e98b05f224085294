package router

import (
	"context"
	"net/url"
)

// RouteContext is the resolved routing state distributed to the subtree
// rendered for the active route. Consumers never mutate it; they call
// Navigate to request a transition.
type RouteContext struct {
	// Pathname is the normalized current pathname.
	Pathname string

	// Search is the raw query string, without the leading "?".
	Search string

	// Params are the parameters bound by the matched route.
	Params Params

	// Query is the parsed key/value view of Search, repeated keys preserved.
	Query url.Values

	// Navigate performs a client-side transition to the destination.
	Navigate func(to string) error
}

type routeContextKey struct{}

// NewContext returns a context carrying the route context. The router
// installs it for the subtree of the active route.
func NewContext(ctx context.Context, rc *RouteContext) context.Context {
	return context.WithValue(ctx, routeContextKey{}, rc)
}

// FromContext returns the route context installed by an active router.
// Calling it outside of one is a programming error and panics immediately
// with a descriptive message instead of degrading to an empty value.
func FromContext(ctx context.Context) *RouteContext {
	rc, ok := ctx.Value(routeContextKey{}).(*RouteContext)
	if !ok || rc == nil {
		panic("router: route context accessor used outside of an active router; " +
			"wrap the calling code in a mounted Router before reading params, query, or navigate")
	}
	return rc
}

// ParamsFrom returns the matched route's bound parameters.
// Panics outside of an active router.
func ParamsFrom(ctx context.Context) Params {
	return FromContext(ctx).Params
}

// QueryFrom returns the parsed query values.
// Panics outside of an active router.
func QueryFrom(ctx context.Context) url.Values {
	return FromContext(ctx).Query
}

// NavigateFrom returns the navigate function.
// Panics outside of an active router.
func NavigateFrom(ctx context.Context) func(to string) error {
	return FromContext(ctx).Navigate
}
