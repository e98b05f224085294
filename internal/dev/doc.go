// Package dev provides the development server and live reload
// functionality.
//
// This package implements:
//   - File watching for page, layout, and asset changes
//   - Route table regeneration on change
//   - WebSocket-based browser refresh
//   - Error overlay in browser
//   - Static serving of the build output with SPA fallback
//
// # Architecture
//
// The development server consists of several components:
//
//   - Watcher: Monitors the pages, layouts, and extra directories
//   - Server: Serves the build output and regenerates routes on change
//   - ReloadServer: Notifies browsers of changes via WebSocket
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{
//	    Config: cfg,
//	})
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// Live reload can be disabled via wayfind.json (dev.hotReload=false).
// Watch paths are derived from the project config (pages, layouts,
// output) plus any entries in dev.watch.
//
// # Live Reload Protocol
//
// The browser connects to /__wayfind/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "error", "error": "..."} // Shows error overlay
//	{"type": "clear"}                 // Clears error overlay
package dev
