package router

import "sync"

// Document is the narrow write interface over the host's global display
// state (page title and the single description entry). It is the only way
// the router touches that state: initialized when the router mounts,
// written only by the metadata applier, released on unmount.
type Document interface {
	// SetTitle sets the active page title.
	SetTitle(title string)

	// UpsertDescription creates the persistent description entry if absent,
	// or overwrites its value if present. Never creates duplicates.
	UpsertDescription(value string)
}

// MemoryDocument is an in-process Document with single-writer semantics.
// It backs tests and non-browser hosts.
type MemoryDocument struct {
	mu             sync.RWMutex
	title          string
	description    string
	hasDescription bool
	descWrites     int
}

// NewMemoryDocument creates an empty document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{}
}

// SetTitle implements Document.
func (d *MemoryDocument) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

// UpsertDescription implements Document.
func (d *MemoryDocument) UpsertDescription(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.description = value
	d.hasDescription = true
	d.descWrites++
}

// Title returns the current title.
func (d *MemoryDocument) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// Description returns the description entry and whether one exists.
// There is at most one entry regardless of how often it was applied.
func (d *MemoryDocument) Description() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.description, d.hasDescription
}

// DescriptionWrites returns how many times the description entry was
// written. Exposed for tests asserting upsert behavior.
func (d *MemoryDocument) DescriptionWrites() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.descWrites
}

// ApplyMeta applies page metadata to the document as display side effects.
// A nil meta is a no-op. Re-applying identical metadata produces no
// observable difference.
func ApplyMeta(doc Document, meta *PageMeta) {
	if doc == nil || meta == nil {
		return
	}
	if meta.Title != "" {
		doc.SetTitle(meta.Title)
	}
	if meta.Description != "" {
		doc.UpsertDescription(meta.Description)
	}
}
