package router

import (
	"encoding/json"
	"io"
)

// RouteInfo mirrors one Route without its loader function, for external
// tooling and inspection.
type RouteInfo struct {
	File     string    `json:"file"`
	Path     string    `json:"path"`
	Segments []Segment `json:"segments"`
}

// Manifest is the plain-data form of a generated route table.
type Manifest struct {
	Routes []RouteInfo `json:"routes"`
}

// BuildManifest converts scanned pages into a manifest, sorted by path.
func BuildManifest(pages []ScannedPage) Manifest {
	sorted := make([]ScannedPage, len(pages))
	copy(sorted, pages)
	SortPages(sorted)

	m := Manifest{Routes: make([]RouteInfo, 0, len(sorted))}
	for _, p := range sorted {
		segments := p.Segments
		if segments == nil {
			segments = []Segment{}
		}
		m.Routes = append(m.Routes, RouteInfo{
			File:     p.File,
			Path:     p.Path,
			Segments: segments,
		})
	}
	return m
}

// TableRoutes converts manifest entries back into Route values with the
// given page loaders keyed by file. Entries without a loader get a nil
// ImportPage.
func (m Manifest) TableRoutes(loaders map[string]PageLoader) []Route {
	routes := make([]Route, 0, len(m.Routes))
	for _, info := range m.Routes {
		routes = append(routes, Route{
			File:       info.File,
			Path:       info.Path,
			Segments:   info.Segments,
			ImportPage: loaders[info.File],
		})
	}
	return routes
}

// Write encodes the manifest as indented JSON.
func (m Manifest) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// ReadManifest decodes a manifest written by Write.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
