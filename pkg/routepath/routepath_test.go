package routepath

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty becomes root", input: "", want: "/"},
		{name: "root unchanged", input: "/", want: "/"},
		{name: "trailing slash stripped", input: "/a/b/", want: "/a/b"},
		{name: "no trailing slash unchanged", input: "/a/b", want: "/a/b"},
		{name: "leading slash added", input: "about", want: "/about"},
		{name: "only one trailing slash stripped", input: "/a//", want: "/a/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePath(tc.input); got != tc.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "root yields no parts", input: "/", want: nil},
		{name: "single part", input: "/users", want: []string{"users"}},
		{name: "two parts", input: "/users/42", want: []string{"users", "42"}},
		{name: "empty yields no parts", input: "", want: nil},
		{name: "duplicate slash dropped", input: "/a//b", want: []string{"a", "b"}},
		{name: "only slashes yields no parts", input: "///", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSegments(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("SplitSegments(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestCanonicalizePath(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPath    string
		wantQuery   string
		wantChanged bool
		wantErr     error
	}{
		{name: "root", input: "/", wantPath: "/"},
		{name: "empty string", input: "", wantPath: "/", wantChanged: true},
		{name: "no leading slash", input: "about", wantPath: "/about", wantChanged: true},
		{name: "collapse slashes", input: "/blog//post", wantPath: "/blog/post", wantChanged: true},
		{name: "single dot", input: "/blog/./post", wantPath: "/blog/post", wantChanged: true},
		{name: "double dot", input: "/blog/posts/../other", wantPath: "/blog/other", wantChanged: true},
		{name: "double dot to root", input: "/blog/../", wantPath: "/", wantChanged: true},
		{name: "query preserved", input: "/projects/123?tab=details", wantPath: "/projects/123", wantQuery: "tab=details"},
		{name: "trailing slash with query", input: "/projects/123/?tab=details", wantPath: "/projects/123", wantQuery: "tab=details", wantChanged: true},
		{name: "backslash rejected", input: "/a\\b", wantErr: ErrBackslashInPath},
		{name: "null byte rejected", input: "/a%00b", wantErr: ErrNullByteInPath},
		{name: "invalid escape rejected", input: "/a%GGb", wantErr: ErrInvalidPercentEscape},
		{name: "truncated escape rejected", input: "/a%2", wantErr: ErrInvalidPercentEscape},
		{name: "escape above root rejected", input: "/../secret", wantErr: ErrPathEscapesRoot},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := CanonicalizePath(tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("CanonicalizePath(%q) error = %v, want %v", tc.input, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CanonicalizePath(%q) unexpected error: %v", tc.input, err)
			}
			if result.Path != tc.wantPath {
				t.Errorf("Path = %q, want %q", result.Path, tc.wantPath)
			}
			if result.Query != tc.wantQuery {
				t.Errorf("Query = %q, want %q", result.Query, tc.wantQuery)
			}
			if result.Changed != tc.wantChanged {
				t.Errorf("Changed = %v, want %v", result.Changed, tc.wantChanged)
			}
		})
	}
}

func TestDecodeSegment(t *testing.T) {
	got, err := DecodeSegment("%20")
	if err != nil {
		t.Fatalf("DecodeSegment(%%20) error: %v", err)
	}
	if got != " " {
		t.Errorf("DecodeSegment(%%20) = %q, want %q", got, " ")
	}

	if _, err := DecodeSegment("%zz"); !errors.Is(err, ErrInvalidPercentEscape) {
		t.Errorf("DecodeSegment(%%zz) error = %v, want ErrInvalidPercentEscape", err)
	}
}

func TestCanonicalizeAndValidateNavPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple path", input: "/about", want: "/about"},
		{name: "path with query", input: "/p/1?tab=x", want: "/p/1?tab=x"},
		{name: "trailing slash removed", input: "/about/", want: "/about"},
		{name: "http url rejected", input: "http://evil.example/x", wantErr: true},
		{name: "protocol relative rejected", input: "//evil.example/x", wantErr: true},
		{name: "relative rejected", input: "about", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CanonicalizeAndValidateNavPath(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSplitPathAndQuery(t *testing.T) {
	path, query := SplitPathAndQuery("/a/b?x=1&x=2")
	if path != "/a/b" || query != "x=1&x=2" {
		t.Errorf("got (%q, %q), want (%q, %q)", path, query, "/a/b", "x=1&x=2")
	}
}
