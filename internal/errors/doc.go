// Package errors provides structured, actionable error messages for Wayfind.
//
// The errors package implements an error system that:
//   - Shows exact source locations (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues with code examples
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - generation: Route scanning and code generation errors
//   - validation: Route authoring errors (duplicates, bad segments)
//   - config: wayfind.json errors
//   - dev: Development server and watcher errors
//   - publish: Artifact upload errors
//   - cli: Command usage errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "E020") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E020").
//	    WithFile("pages/users/index.go").
//	    WithSuggestion("Remove or rename one of the conflicting page files")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E020: Duplicate route pattern
//	//
//	//   pages/users/index.go
//	//
//	//   Two or more page files resolve to the same URL pattern. Route
//	//   priority is table order, so duplicates are rejected at generation
//	//   time.
//	//
//	//   Hint: Remove or rename one of the conflicting page files
//	//
//	//   Learn more: https://wayfind.dev/docs/errors/E020
package errors
