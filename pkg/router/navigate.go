package router

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// Navigation errors.
var (
	// ErrCrossOrigin is returned when a destination resolves outside the
	// router's origin. Cross-origin destinations belong to the platform,
	// not to client-side navigation.
	ErrCrossOrigin = errors.New("destination resolves outside the current origin")
)

// Navigator performs programmatic navigation: it resolves a destination
// against the current origin, pushes a history entry, and publishes the
// new location through the same store channel the back/forward path uses.
// It never decides route matching itself; that is re-derived downstream
// from the published location.
type Navigator struct {
	origin  *url.URL
	history History
	store   *LocationStore
}

// NewNavigator creates a navigator for the given origin, e.g.
// "https://app.example.com". The origin must carry a scheme and host.
func NewNavigator(origin string, history History, store *LocationStore) (*Navigator, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must include scheme and host", origin)
	}
	return &Navigator{origin: u, history: history, store: store}, nil
}

// Navigate resolves to against the current origin, pushes a new history
// entry for it (no reload), and triggers the unified location update path.
func (n *Navigator) Navigate(to string) error {
	loc, err := n.resolve(to)
	if err != nil {
		return err
	}

	n.history.Push(loc)
	n.store.SetLocation(loc)
	return nil
}

// resolve turns a destination string (absolute, origin-relative, or
// relative to the current pathname) into a canonical same-origin location.
func (n *Navigator) resolve(to string) (Location, error) {
	ref, err := url.Parse(to)
	if err != nil {
		return Location{}, fmt.Errorf("invalid destination %q: %w", to, err)
	}

	base := *n.origin
	base.Path = n.store.Current().Pathname
	abs := base.ResolveReference(ref)

	if abs.Host != n.origin.Host || abs.Scheme != n.origin.Scheme {
		return Location{}, fmt.Errorf("navigate to %q: %w", to, ErrCrossOrigin)
	}

	result, err := routepath.CanonicalizePath(abs.EscapedPath())
	if err != nil {
		return Location{}, fmt.Errorf("navigate to %q: %w", to, err)
	}

	return Location{Pathname: result.Path, Search: abs.RawQuery}, nil
}

// Click describes the pointer/keyboard state of an anchor activation, as
// forwarded by the host's link control.
type Click struct {
	Meta             bool
	Ctrl             bool
	Shift            bool
	Alt              bool
	DefaultPrevented bool
}

// hasModifier reports whether any modifier key was held, signaling the
// user wants default browser behavior (new tab, download, ...).
func (c Click) hasModifier() bool {
	return c.Meta || c.Ctrl || c.Shift || c.Alt
}

// HandleClick is the anchor-interception entry point. It returns true when
// the navigation was intercepted and performed client-side; false means
// the caller must leave the event alone and let the platform handle it
// natively. Activations that were already default-prevented, carry a
// modifier key, or resolve cross-origin are never intercepted.
func (n *Navigator) HandleClick(href string, ev Click) bool {
	if ev.DefaultPrevented || ev.hasModifier() {
		return false
	}
	if err := n.Navigate(href); err != nil {
		return false
	}
	return true
}
