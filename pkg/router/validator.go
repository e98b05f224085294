package router

import (
	"fmt"
	"sort"
	"strings"
)

// Validator checks scanned pages for authoring errors before code or
// manifest generation. Route priority is established by table order, so
// conflicts must be rejected here rather than resolved at match time.
type Validator struct {
	pages  []ScannedPage
	errors []ValidationError
}

// ValidationError is one generation-time route error.
type ValidationError struct {
	// Type is the error category.
	Type ValidationErrorType

	// Message is the human-readable error message.
	Message string

	// Files are the source files involved.
	Files []string

	// Path is the offending URL pattern, when known.
	Path string
}

func (e ValidationError) Error() string {
	if len(e.Files) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, strings.Join(e.Files, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorDuplicateRoute indicates multiple files resolve to the same
	// URL pattern.
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorSegmentAfterCatchAll indicates a route declares segments
	// after a catch-all. The catch-all consumes the whole remainder, so
	// anything after it can never match.
	ErrorSegmentAfterCatchAll ValidationErrorType = "SEGMENT_AFTER_CATCH_ALL"

	// ErrorEmptyParamName indicates a parameter or catch-all fragment
	// with no name, e.g. [].go or [...].go.
	ErrorEmptyParamName ValidationErrorType = "EMPTY_PARAM_NAME"
)

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// NewValidator creates a validator over the scanned pages.
func NewValidator(pages []ScannedPage) *Validator {
	return &Validator{pages: pages}
}

// Validate checks all pages. Returns nil when everything is valid, or a
// MultiValidationError carrying every problem found.
func (v *Validator) Validate() error {
	v.errors = nil

	v.validateDuplicates()
	v.validateSegments()

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

// validateDuplicates rejects distinct files resolving to the same URL
// pattern.
func (v *Validator) validateDuplicates() {
	byPath := make(map[string][]string)
	for _, p := range v.pages {
		byPath[p.Path] = append(byPath[p.Path], p.File)
	}

	paths := make([]string, 0, len(byPath))
	for path, files := range byPath {
		if len(files) > 1 {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	for _, path := range paths {
		files := byPath[path]
		sort.Strings(files)
		v.errors = append(v.errors, ValidationError{
			Type:    ErrorDuplicateRoute,
			Message: fmt.Sprintf("%d files resolve to %q", len(files), path),
			Files:   files,
			Path:    path,
		})
	}
}

// validateSegments rejects empty parameter names and segments declared
// after a catch-all.
func (v *Validator) validateSegments() {
	for _, p := range v.pages {
		for i, seg := range p.Segments {
			switch seg.Kind {
			case SegmentParam, SegmentCatchAll:
				if seg.Name == "" {
					v.errors = append(v.errors, ValidationError{
						Type:    ErrorEmptyParamName,
						Message: fmt.Sprintf("route %q declares a parameter with no name", p.Path),
						Files:   []string{p.File},
						Path:    p.Path,
					})
				}
			}
			if seg.Kind == SegmentCatchAll && i != len(p.Segments)-1 {
				v.errors = append(v.errors, ValidationError{
					Type:    ErrorSegmentAfterCatchAll,
					Message: fmt.Sprintf("route %q declares segments after catch-all %q", p.Path, seg.Name),
					Files:   []string{p.File},
					Path:    p.Path,
				})
			}
		}
	}
}
