package router

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"sort"
	"strings"
)

const routerImportPath = "github.com/wayfind-dev/wayfind/pkg/router"

// Generator emits the compile-time route registration file from scanned
// pages. Output is deterministic: running it twice over the same pages
// produces identical bytes.
type Generator struct {
	pages      []ScannedPage
	importPath string
}

// NewGenerator creates a generator. importPath is the import path of the
// pages directory package; the generated file lives in that package and
// imports its subpackages.
func NewGenerator(pages []ScannedPage, importPath string) *Generator {
	sorted := make([]ScannedPage, len(pages))
	copy(sorted, pages)
	SortPages(sorted)
	return &Generator{pages: sorted, importPath: importPath}
}

// Generate produces the routes_gen.go source.
func (g *Generator) Generate() ([]byte, error) {
	for _, p := range g.pages {
		if p.Provider == "" {
			return nil, fmt.Errorf("page %s exports no function ending in %q; non-Go pages belong in the manifest, not generated code", p.File, "Page")
		}
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by wayfind gen routes. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", g.packageName())
	g.writeImports(&buf)
	g.writeConstants(&buf)
	g.writeRoutes(&buf)

	fmt.Fprintf(&buf, "func loadPage(provider func() *router.PageModule) router.PageLoader {\n")
	fmt.Fprintf(&buf, "\treturn func(ctx context.Context) (*router.PageModule, error) {\n")
	fmt.Fprintf(&buf, "\t\treturn provider(), nil\n")
	fmt.Fprintf(&buf, "\t}\n}\n")

	return format.Source(buf.Bytes())
}

// packageName is the package the generated file belongs to: the package
// of the root-level pages when present, otherwise the directory name.
func (g *Generator) packageName() string {
	for _, p := range g.pages {
		if !strings.Contains(p.File, "/") && p.Package != "" {
			return p.Package
		}
	}
	return sanitizeIdent(path.Base(g.importPath))
}

func (g *Generator) writeImports(buf *bytes.Buffer) {
	sub := g.subpackages()

	fmt.Fprintf(buf, "import (\n")
	fmt.Fprintf(buf, "\t\"context\"\n\n")
	fmt.Fprintf(buf, "\trouter %q\n", routerImportPath)
	if len(sub) > 0 {
		fmt.Fprintf(buf, "\n")
		for _, dir := range sub {
			fmt.Fprintf(buf, "\t%s %q\n", g.packageFor(dir), path.Join(g.importPath, dir))
		}
	}
	fmt.Fprintf(buf, ")\n\n")
}

func (g *Generator) writeConstants(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "// Route path constants.\nconst (\n")
	for _, p := range g.pages {
		fmt.Fprintf(buf, "\tRoute%s = %q\n", routeIdent(p.Segments), p.Path)
	}
	fmt.Fprintf(buf, ")\n\n")
}

func (g *Generator) writeRoutes(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "// Routes returns the route table entries in match order.\n")
	fmt.Fprintf(buf, "func Routes() []router.Route {\n")
	fmt.Fprintf(buf, "\treturn []router.Route{\n")
	for _, p := range g.pages {
		fmt.Fprintf(buf, "\t\t{\n")
		fmt.Fprintf(buf, "\t\t\tFile:       %q,\n", p.File)
		fmt.Fprintf(buf, "\t\t\tPath:       Route%s,\n", routeIdent(p.Segments))
		fmt.Fprintf(buf, "\t\t\tSegments:   %s,\n", segmentsLiteral(p.Segments))
		fmt.Fprintf(buf, "\t\t\tImportPage: loadPage(%s),\n", g.providerRef(p))
		fmt.Fprintf(buf, "\t\t},\n")
	}
	fmt.Fprintf(buf, "\t}\n}\n\n")
}

// subpackages returns the sorted set of page subdirectories that need an
// import.
func (g *Generator) subpackages() []string {
	seen := map[string]bool{}
	for _, p := range g.pages {
		if dir := path.Dir(p.File); dir != "." {
			seen[dir] = true
		}
	}
	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// packageFor is the import alias for a page subdirectory: the scanned
// package name, falling back to a sanitized directory name.
func (g *Generator) packageFor(dir string) string {
	for _, p := range g.pages {
		if path.Dir(p.File) == dir && p.Package != "" {
			return p.Package
		}
	}
	return sanitizeIdent(path.Base(dir))
}

func (g *Generator) providerRef(p ScannedPage) string {
	if dir := path.Dir(p.File); dir != "." {
		return g.packageFor(dir) + "." + p.Provider
	}
	return p.Provider
}

// LayoutGenerator emits the layout manifest file from scanned layouts.
type LayoutGenerator struct {
	layouts    []ScannedLayout
	importPath string
}

// NewLayoutGenerator creates a layout manifest generator. importPath is
// the import path of the layouts directory package.
func NewLayoutGenerator(layouts []ScannedLayout, importPath string) *LayoutGenerator {
	sorted := make([]ScannedLayout, len(layouts))
	copy(sorted, layouts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &LayoutGenerator{layouts: sorted, importPath: importPath}
}

// Generate produces the layouts_gen.go source.
func (g *LayoutGenerator) Generate() ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by wayfind gen routes. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", g.packageName())
	g.writeImports(&buf)

	fmt.Fprintf(&buf, "// Layouts returns the layout name to loader manifest.\n")
	fmt.Fprintf(&buf, "func Layouts() router.LayoutManifest {\n")
	fmt.Fprintf(&buf, "\treturn router.LayoutManifest{\n")
	for _, l := range g.layouts {
		fmt.Fprintf(&buf, "\t\t%q: loadLayout(%s),\n", l.Name, g.providerRef(l))
	}
	fmt.Fprintf(&buf, "\t}\n}\n\n")

	fmt.Fprintf(&buf, "func loadLayout(provider func() *router.LayoutModule) router.LayoutLoader {\n")
	fmt.Fprintf(&buf, "\treturn func(ctx context.Context) (*router.LayoutModule, error) {\n")
	fmt.Fprintf(&buf, "\t\treturn provider(), nil\n")
	fmt.Fprintf(&buf, "\t}\n}\n")

	return format.Source(buf.Bytes())
}

func (g *LayoutGenerator) packageName() string {
	for _, l := range g.layouts {
		if !strings.Contains(l.File, "/") && l.Package != "" {
			return l.Package
		}
	}
	return sanitizeIdent(path.Base(g.importPath))
}

func (g *LayoutGenerator) writeImports(buf *bytes.Buffer) {
	seen := map[string]bool{}
	for _, l := range g.layouts {
		if dir := path.Dir(l.File); dir != "." {
			seen[dir] = true
		}
	}
	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	fmt.Fprintf(buf, "import (\n")
	fmt.Fprintf(buf, "\t\"context\"\n\n")
	fmt.Fprintf(buf, "\trouter %q\n", routerImportPath)
	if len(dirs) > 0 {
		fmt.Fprintf(buf, "\n")
		for _, dir := range dirs {
			fmt.Fprintf(buf, "\t%s %q\n", g.packageFor(dir), path.Join(g.importPath, dir))
		}
	}
	fmt.Fprintf(buf, ")\n\n")
}

func (g *LayoutGenerator) packageFor(dir string) string {
	for _, l := range g.layouts {
		if path.Dir(l.File) == dir && l.Package != "" {
			return l.Package
		}
	}
	return sanitizeIdent(path.Base(dir))
}

func (g *LayoutGenerator) providerRef(l ScannedLayout) string {
	if dir := path.Dir(l.File); dir != "." {
		return g.packageFor(dir) + "." + l.Provider
	}
	return l.Provider
}

// routeIdent derives a Go identifier from route segments: "/users/:id"
// becomes UsersID, "/" becomes Index.
func routeIdent(segments []Segment) string {
	if len(segments) == 0 {
		return "Index"
	}
	var sb strings.Builder
	for _, seg := range segments {
		word := seg.Value
		if seg.Kind != SegmentStatic {
			word = seg.Name
		}
		for _, part := range strings.FieldsFunc(word, func(r rune) bool {
			return r == '-' || r == '_' || r == '.'
		}) {
			sb.WriteString(exportWord(part))
		}
	}
	if sb.Len() == 0 {
		return "Index"
	}
	return sb.String()
}

// exportWord capitalizes a path word, uppercasing common initialisms so
// [id] yields ID rather than Id.
func exportWord(word string) string {
	switch strings.ToLower(word) {
	case "id":
		return "ID"
	case "api":
		return "API"
	case "url":
		return "URL"
	case "uuid":
		return "UUID"
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// segmentsLiteral renders a []Segment as Go source.
func segmentsLiteral(segments []Segment) string {
	if len(segments) == 0 {
		return "nil"
	}
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentParam:
			parts = append(parts, fmt.Sprintf("router.Param(%q)", seg.Name))
		case SegmentCatchAll:
			parts = append(parts, fmt.Sprintf("router.CatchAll(%q)", seg.Name))
		default:
			parts = append(parts, fmt.Sprintf("router.Static(%q)", seg.Value))
		}
	}
	return "[]router.Segment{" + strings.Join(parts, ", ") + "}"
}

// sanitizeIdent strips characters that cannot appear in a Go identifier.
func sanitizeIdent(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '-' || r == '.' {
			continue
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "pages"
	}
	return sb.String()
}
