// Package router implements file-based client-side routing for Wayfind.
//
// The router provides:
//   - File-system based route discovery from the pages directory
//   - An ordered route table with first-match-wins resolution
//   - Parameter extraction with percent-decoding and type coercion
//   - Async page loading with stale-result discard
//   - Document metadata application (title, description)
//   - Code generation for compile-time route registration
//
// # File Structure Convention
//
// Routes are defined by files in the pages directory:
//
//	pages/
//	├── index.go             → /
//	├── about.go             → /about
//	├── users/
//	│   ├── index.go         → /users
//	│   └── [id].go          → /users/:id
//	├── docs/
//	│   └── [...slug].go     → /docs/*slug
//	└── _drafts/             → excluded (underscore prefix)
//
// Dynamic segments use brackets: [id] matches exactly one segment,
// [...slug] matches zero or more trailing segments and must be last.
//
// # Usage
//
//	table := router.NewTable(generatedRoutes)
//	r := router.New(table, router.Options{
//		History:  history,
//		Document: doc,
//		Layouts:  generatedLayouts,
//	})
//	r.OnChange(func(res router.Resolved) {
//		// render res.Page inside res.Layout, or the not-found view
//	})
//	if err := r.Mount(); err != nil {
//		return err
//	}
//	defer r.Unmount()
//
//	r.Navigate("/users/42")
package router
