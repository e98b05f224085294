package dev

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	// ChangePage is a change under the pages directory. Routes must be
	// regenerated.
	ChangePage ChangeType = iota

	// ChangeLayout is a change under the layouts directory. The layout
	// manifest must be regenerated.
	ChangeLayout

	// ChangeAsset is any other change, e.g. build output or extra watch
	// paths. Browsers reload without regeneration.
	ChangeAsset
)

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// PagesDir is the pages directory; changes under it classify as
	// ChangePage.
	PagesDir string

	// LayoutsDir is the layouts directory; changes under it classify as
	// ChangeLayout.
	LayoutsDir string

	// Extra are additional directories to watch as assets.
	Extra []string

	// Ignore patterns to skip (globs).
	Ignore []string

	// Debounce is the delay before triggering on change.
	Debounce time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	"*_test.go",
	".git",
	"node_modules",
	"dist",
	"tmp",
	".wayfind",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher monitors the pages, layouts, and extra directories for changes
// by polling modification times.
type Watcher struct {
	config      WatcherConfig
	onChange    func(Change)
	mu          sync.Mutex
	running     bool
	initialized bool
	stopCh      chan struct{}
	timestamps  map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}

	return &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}
}

// paths returns every watched root.
func (w *Watcher) paths() []string {
	var out []string
	if w.config.PagesDir != "" {
		out = append(out, w.config.PagesDir)
	}
	if w.config.LayoutsDir != "" {
		out = append(out, w.config.LayoutsDir)
	}
	return append(out, w.config.Extra...)
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching for file changes. It blocks until the context is
// canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	// Initialize timestamps
	w.scanInitial()

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// scanInitial builds the initial timestamp map.
func (w *Watcher) scanInitial() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, root := range w.paths() {
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if w.shouldIgnore(p) {
					return filepath.SkipDir
				}
				return nil
			}
			if !w.shouldIgnore(p) {
				w.timestamps[p] = info.ModTime()
			}
			return nil
		})
	}

	w.initialized = true
}

// checkForChanges scans for modified files.
func (w *Watcher) checkForChanges() {
	w.mu.Lock()
	callback := w.onChange
	initialized := w.initialized
	w.mu.Unlock()

	if callback == nil {
		return
	}

	var changes []Change

	for _, root := range w.paths() {
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if w.shouldIgnore(p) {
					return filepath.SkipDir
				}
				return nil
			}
			if w.shouldIgnore(p) {
				return nil
			}

			w.mu.Lock()
			lastMod, exists := w.timestamps[p]
			modTime := info.ModTime()
			w.mu.Unlock()

			if !exists || modTime.After(lastMod) {
				w.mu.Lock()
				w.timestamps[p] = modTime
				w.mu.Unlock()

				if exists || initialized {
					changes = append(changes, Change{
						Path: p,
						Type: w.classify(p),
					})
				}
			}

			return nil
		})
	}

	// Also check for deleted files
	w.mu.Lock()
	for p := range w.timestamps {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			delete(w.timestamps, p)
			changes = append(changes, Change{
				Path: p,
				Type: w.classify(p),
			})
		}
	}
	w.mu.Unlock()

	// Report changes (debounced: report first change of each type)
	reportedTypes := make(map[ChangeType]bool)
	for _, change := range changes {
		if !reportedTypes[change.Type] {
			reportedTypes[change.Type] = true
			callback(change)
		}
	}
}

// classify determines the change type from the watched root the path
// falls under.
func (w *Watcher) classify(p string) ChangeType {
	if w.config.PagesDir != "" && isUnder(p, w.config.PagesDir) {
		return ChangePage
	}
	if w.config.LayoutsDir != "" && isUnder(p, w.config.LayoutsDir) {
		return ChangeLayout
	}
	return ChangeAsset
}

func isUnder(p, root string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		// Direct match
		if name == pattern {
			return true
		}

		hasPathSep := strings.Contains(pattern, "/") || strings.Contains(pattern, "\\")
		hasGlob := strings.ContainsAny(pattern, "*?[")

		if hasGlob {
			if hasPathSep {
				if matched, _ := path.Match(filepath.ToSlash(pattern), normalized); matched {
					return true
				}
			} else {
				if matched, _ := filepath.Match(pattern, name); matched {
					return true
				}
			}
			continue
		}

		if hasPathSep {
			if pathMatchesSegments(normalized, filepath.ToSlash(pattern)) {
				return true
			}
			continue
		}

		if pathHasSegment(normalized, pattern) {
			return true
		}
	}

	return false
}

func pathHasSegment(path, segment string) bool {
	if segment == "" {
		return false
	}
	parts := splitPathSegments(path)
	for _, part := range parts {
		if part == segment {
			return true
		}
	}
	return false
}

func pathMatchesSegments(path, pattern string) bool {
	pathParts := splitPathSegments(path)
	patternParts := splitPathSegments(pattern)
	if len(patternParts) == 0 || len(patternParts) > len(pathParts) {
		return false
	}

	for i := 0; i <= len(pathParts)-len(patternParts); i++ {
		match := true
		for j := range patternParts {
			if pathParts[i+j] != patternParts[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}

	return false
}

func splitPathSegments(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	result := parts[:0]
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
