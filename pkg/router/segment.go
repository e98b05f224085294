package router

import "strings"

// SegmentKind discriminates the three segment variants.
type SegmentKind string

const (
	// SegmentStatic matches one pathname part exactly.
	SegmentStatic SegmentKind = "static"

	// SegmentParam binds one pathname part to a named parameter.
	SegmentParam SegmentKind = "param"

	// SegmentCatchAll binds all remaining pathname parts, including zero.
	SegmentCatchAll SegmentKind = "catchAll"
)

// Segment is one unit of a route pattern. Segments are created once at
// manifest-generation time and never mutated.
type Segment struct {
	// Kind is the segment variant.
	Kind SegmentKind `json:"kind"`

	// Value is the literal text of a static segment.
	Value string `json:"value,omitempty"`

	// Name is the parameter name of a param or catch-all segment.
	Name string `json:"name,omitempty"`
}

// Static creates a static segment.
func Static(value string) Segment {
	return Segment{Kind: SegmentStatic, Value: value}
}

// Param creates a named parameter segment.
func Param(name string) Segment {
	return Segment{Kind: SegmentParam, Name: name}
}

// CatchAll creates a catch-all segment.
func CatchAll(name string) Segment {
	return Segment{Kind: SegmentCatchAll, Name: name}
}

// ParseSegment classifies a single file path fragment (one slash-delimited
// component of a page file's relative path, extension already stripped):
//
//	[...name] → catch-all segment named "name"
//	[name]    → parameter segment named "name"
//	anything  → static segment with the literal fragment
//
// Any string is classifiable; there are no error cases.
func ParseSegment(fragment string) Segment {
	if strings.HasPrefix(fragment, "[...") && strings.HasSuffix(fragment, "]") {
		return CatchAll(fragment[4 : len(fragment)-1])
	}
	if strings.HasPrefix(fragment, "[") && strings.HasSuffix(fragment, "]") {
		return Param(fragment[1 : len(fragment)-1])
	}
	return Static(fragment)
}

// ParsePattern parses a URL route pattern in router notation into segments:
//
//	/users/:id   → [static("users"), param("id")]
//	/files/*rest → [static("files"), catchAll("rest")]
//
// This is the inverse of PatternFor and exists so tables can be built by
// hand without going through the generator.
func ParsePattern(pattern string) []Segment {
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return nil
	}

	parts := strings.Split(pattern, "/")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		switch {
		case strings.HasPrefix(part, "*"):
			segments = append(segments, CatchAll(part[1:]))
		case strings.HasPrefix(part, ":"):
			segments = append(segments, Param(part[1:]))
		default:
			segments = append(segments, Static(part))
		}
	}
	return segments
}

// PatternFor renders segments back into router notation, with a leading
// slash. Zero segments render as "/".
func PatternFor(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		switch seg.Kind {
		case SegmentParam:
			b.WriteByte(':')
			b.WriteString(seg.Name)
		case SegmentCatchAll:
			b.WriteByte('*')
			b.WriteString(seg.Name)
		default:
			b.WriteString(seg.Value)
		}
	}
	return b.String()
}
