package router

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ScannedPage is one route file discovered in the pages directory.
type ScannedPage struct {
	// File is the path relative to the pages directory, slash-separated.
	File string

	// Path is the URL pattern in router notation (:name, *name).
	Path string

	// Segments is the parsed form of Path.
	Segments []Segment

	// Package and Provider identify the page module factory for Go page
	// files. Provider is the exported function ending in "Page". Both are
	// empty for non-Go extensions, which scan into the manifest only.
	Package  string
	Provider string
}

// ScannedLayout is one layout file discovered in the layouts directory.
type ScannedLayout struct {
	// File is the path relative to the layouts directory, slash-separated.
	File string

	// Name is the layout key: the relative path without extension, with a
	// trailing "index" elided ("marketing/index.go" → "marketing").
	Name string

	Package  string
	Provider string
}

// ScanOptions configures scanning behavior.
type ScanOptions struct {
	// Validate enables generation-time rejection of duplicate patterns,
	// segments after a catch-all, and empty parameter names.
	Validate bool

	// Sort orders pages by Path ascending (lexicographic) so repeated
	// runs produce identical output.
	Sort bool

	// Extensions lists the file extensions treated as page files.
	// Defaults to [".go"]. Non-Go extensions produce manifest-only pages
	// without a provider.
	Extensions []string
}

// Scanner discovers route files under a pages directory.
type Scanner struct {
	rootDir string
}

// NewScanner creates a page scanner rooted at the given directory.
func NewScanner(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// Scan reads all page files and returns route definitions, validated and
// sorted by path.
func (s *Scanner) Scan() ([]ScannedPage, error) {
	return s.ScanWithOptions(ScanOptions{Validate: true, Sort: true})
}

// ScanWithOptions reads all page files with configurable validation,
// sorting, and extension filtering.
func (s *Scanner) ScanWithOptions(opts ScanOptions) ([]ScannedPage, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".go"}
	}

	var pages []ScannedPage

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// An underscore prefix excludes the file, or the whole subtree
		// for directories.
		if strings.HasPrefix(d.Name(), "_") && path != s.rootDir {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if !containsString(exts, ext) {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") || strings.HasSuffix(path, "_gen.go") {
			return nil
		}

		page, err := s.scanFile(path, ext)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		pages = append(pages, *page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.Validate {
		if err := NewValidator(pages).Validate(); err != nil {
			return nil, err
		}
	}

	if opts.Sort {
		SortPages(pages)
	}

	return pages, nil
}

// ScanLayouts reads the layouts directory and returns layout definitions
// sorted lexicographically by name.
func (s *Scanner) ScanLayouts(layoutsDir string) ([]ScannedLayout, error) {
	var layouts []ScannedLayout

	err := filepath.WalkDir(layoutsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), "_") && path != layoutsDir {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") || strings.HasSuffix(path, "_gen.go") {
			return nil
		}

		rel, err := filepath.Rel(layoutsDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		pkg, provider, err := scanProvider(path, "Layout")
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if provider == "" {
			return fmt.Errorf("layout file %s exports no function ending in %q", rel, "Layout")
		}

		layouts = append(layouts, ScannedLayout{
			File:     rel,
			Name:     layoutName(rel),
			Package:  pkg,
			Provider: provider,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].Name < layouts[j].Name })
	return layouts, nil
}

// scanFile maps one page file to its route definition.
func (s *Scanner) scanFile(path, ext string) (*ScannedPage, error) {
	rel, err := filepath.Rel(s.rootDir, path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	page := &ScannedPage{File: rel}
	page.Path, page.Segments = filePathToPattern(rel, ext)

	if ext == ".go" {
		page.Package, page.Provider, err = scanProvider(path, "Page")
		if err != nil {
			return nil, err
		}
	}

	return page, nil
}

// filePathToPattern converts a relative page path to a URL pattern.
// A file at a/b/c.ext maps to /a/b/c; a trailing "index" is elided, so
// a/index.ext maps to /a and the root index.ext to /.
func filePathToPattern(rel, ext string) (string, []Segment) {
	trimmed := strings.TrimSuffix(rel, ext)

	parts := strings.Split(trimmed, "/")
	if parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}

	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, ParseSegment(part))
	}
	return PatternFor(segments), segments
}

// layoutName derives a layout key from a layout file path. A trailing
// "index" is elided for nested files (a/index.go keys as "a"), but a
// root-level index.go keeps the name "index" so the key is never empty.
func layoutName(rel string) string {
	name := strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(name, "/")
	if len(parts) > 1 && parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "/")
}

// scanProvider parses a Go source file and returns its package name and
// the first exported function whose name ends in suffix, in declaration
// order.
func scanProvider(path, suffix string) (string, string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return "", "", err
	}
	pkg := f.Name.Name

	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv != nil || fd.Name == nil || !fd.Name.IsExported() {
			continue
		}
		if strings.HasSuffix(fd.Name.Name, suffix) {
			return pkg, fd.Name.Name, nil
		}
	}
	return pkg, "", nil
}

// SortPages orders pages by Path ascending, then by File for stability
// between runs.
func SortPages(pages []ScannedPage) {
	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Path != pages[j].Path {
			return pages[i].Path < pages[j].Path
		}
		return pages[i].File < pages[j].File
	})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
