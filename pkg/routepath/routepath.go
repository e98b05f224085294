// Package routepath provides URL path normalization, splitting, and
// percent-decoding used by the route matcher and the navigator.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// NormalizePath normalizes a pathname for matching:
//   - empty input becomes "/"
//   - a leading slash is ensured
//   - exactly one trailing slash is stripped, unless the path is "/"
//
// Matching treats "/a/b/" and "/a/b" identically; deeper cleanup such as
// duplicate-slash collapsing belongs to CanonicalizePath.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// SplitSegments splits a normalized pathname into its non-empty
// slash-delimited parts. The root path yields zero parts.
func SplitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// CanonicalizeResult contains the result of path canonicalization.
type CanonicalizeResult struct {
	// Path is the canonicalized path (without query string).
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// CanonicalizePath normalizes a URL path for navigation.
//
// Transformations applied:
//   - Remove trailing slash (except for root "/")
//   - Collapse multiple slashes (/blog//post → /blog/post)
//   - Remove "." segments (/blog/./post → /blog/post)
//   - Resolve ".." segments (/blog/../other → /other)
//
// The following inputs are rejected with an error:
//   - Paths containing backslash (\)
//   - Paths containing NUL byte (%00)
//   - Invalid percent-escapes (e.g., %GG, %2)
//   - ".." that would escape root (e.g., /../secret)
//
// The input may include a query string, which is preserved but not
// canonicalized.
func CanonicalizePath(input string) (CanonicalizeResult, error) {
	if input == "" {
		return CanonicalizeResult{Path: "/", Changed: true}, nil
	}

	path, query, _ := strings.Cut(input, "?")

	// SECURITY: Reject backslash.
	if strings.Contains(path, "\\") {
		return CanonicalizeResult{}, ErrBackslashInPath
	}

	// SECURITY: Reject NUL byte (both literal and encoded).
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return CanonicalizeResult{}, ErrNullByteInPath
	}

	if strings.Contains(path, "%") {
		if err := ValidatePercentEscapes(path); err != nil {
			return CanonicalizeResult{}, err
		}
	}

	original := path

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	segments := strings.Split(path, "/")
	var result []string

	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			// Pop the last segment, but don't go above root.
			if len(result) > 0 {
				result = result[:len(result)-1]
			} else {
				return CanonicalizeResult{}, ErrPathEscapesRoot
			}
		default:
			result = append(result, seg)
		}
	}

	path = "/" + strings.Join(result, "/")

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	return CanonicalizeResult{
		Path:    path,
		Query:   query,
		Changed: path != original,
	}, nil
}

// ValidatePercentEscapes checks that all percent-escapes are valid.
// Valid escapes are %XX where X is a hex digit (0-9, a-f, A-F).
func ValidatePercentEscapes(path string) error {
	i := 0
	for i < len(path) {
		if path[i] == '%' {
			if i+2 >= len(path) {
				return ErrInvalidPercentEscape
			}
			if !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
				return ErrInvalidPercentEscape
			}
			i += 3
		} else {
			i++
		}
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DecodeSegment percent-decodes a single path segment. A malformed escape
// is an error, never silently passed through.
func DecodeSegment(segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	return decoded, nil
}

// CanonicalizeAndValidateNavPath canonicalizes and validates a navigation
// destination. Destinations must be relative paths:
//   - MUST start with "/"
//   - MUST NOT be a full URL (no "http://", "https://", "//")
//
// Returns the canonicalized path with query string, or an error if invalid.
func CanonicalizeAndValidateNavPath(path string) (string, error) {
	// SECURITY: Reject absolute URLs to prevent open-redirect style targets.
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(path, "/") {
		return "", ErrInvalidPath
	}

	result, err := CanonicalizePath(path)
	if err != nil {
		return "", err
	}

	if result.Query != "" {
		return result.Path + "?" + result.Query, nil
	}

	return result.Path, nil
}

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}
