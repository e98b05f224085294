package router

import (
	"sync"

	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// Location is the current navigation position: a normalized pathname (no
// trailing slash except root) and the raw query string.
type Location struct {
	Pathname string
	Search   string
}

// normalize returns the location with its pathname normalized.
func (l Location) normalize() Location {
	l.Pathname = routepath.NormalizePath(l.Pathname)
	return l
}

// History is the browser-style navigation environment the router runs in.
// Subscribe delivers back/forward traversal notifications (the popstate
// channel); Push adds an entry without notifying, mirroring pushState.
type History interface {
	// Location returns the active location.
	Location() Location

	// Push adds a new history entry and makes it active.
	Push(loc Location)

	// Subscribe registers a callback for back/forward traversal.
	// The returned function unsubscribes.
	Subscribe(fn func(Location)) (unsubscribe func())
}

// MemoryHistory is an in-process History with a back/forward stack.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Location
	index   int
	subs    map[uint64]func(Location)
	nextSub uint64
}

// NewMemoryHistory creates a history whose single entry is the initial
// location.
func NewMemoryHistory(initial Location) *MemoryHistory {
	return &MemoryHistory{
		entries: []Location{initial.normalize()},
		subs:    make(map[uint64]func(Location)),
	}
}

// Location implements History.
func (h *MemoryHistory) Location() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push implements History. It truncates any forward entries, mirroring
// browser pushState, and does not notify subscribers.
func (h *MemoryHistory) Push(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], loc.normalize())
	h.index = len(h.entries) - 1
}

// Subscribe implements History.
func (h *MemoryHistory) Subscribe(fn func(Location)) func() {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Back moves one entry backwards, notifying subscribers. No-op at the
// oldest entry.
func (h *MemoryHistory) Back() {
	h.traverse(-1)
}

// Forward moves one entry forwards, notifying subscribers. No-op at the
// newest entry.
func (h *MemoryHistory) Forward() {
	h.traverse(1)
}

func (h *MemoryHistory) traverse(delta int) {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return
	}
	h.index = next
	loc := h.entries[h.index]
	subs := make([]func(Location), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(loc)
	}
}

// Len returns the number of history entries. Exposed for tests.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// locationListener pairs a subscriber with a removable identity.
type locationListener struct {
	id uint64
	fn func(Location)
}

// LocationStore tracks the current location. It initializes from the
// history, subscribes to its back/forward notifications, and republishes
// whole location snapshots to its own subscribers. Programmatic navigation
// feeds the same channel via SetLocation, so every consumer observes
// changes through one path. Exactly one history subscription is active per
// store; Close releases it.
type LocationStore struct {
	history History

	mu      sync.RWMutex
	current Location
	subs    []locationListener
	nextID  uint64
	unsub   func()
	closed  bool
}

// NewLocationStore creates a store bound to the given history.
func NewLocationStore(h History) *LocationStore {
	s := &LocationStore{
		history: h,
		current: h.Location().normalize(),
	}
	s.unsub = h.Subscribe(s.SetLocation)
	return s
}

// Current returns the current location snapshot.
func (s *LocationStore) Current() Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a callback invoked with each published snapshot.
// The returned function unsubscribes.
func (s *LocationStore) Subscribe(fn func(Location)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, locationListener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.subs {
			if l.id == id {
				s.subs[i] = s.subs[len(s.subs)-1]
				s.subs = s.subs[:len(s.subs)-1]
				return
			}
		}
	}
}

// SetLocation publishes a new snapshot. Snapshots are always complete,
// never partial. Subscribers are copied before notification so callbacks
// may themselves subscribe or unsubscribe.
func (s *LocationStore) SetLocation(loc Location) {
	loc = loc.normalize()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.current = loc
	subs := make([]locationListener, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, l := range subs {
		l.fn(loc)
	}
}

// Close detaches the store from its history. Further SetLocation calls
// are ignored.
func (s *LocationStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsub := s.unsub
	s.unsub = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
