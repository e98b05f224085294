package router

import (
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// MatchSegments matches a normalized pathname against a route's segment
// list, walking both in lock-step with a single cursor:
//
//   - static: the pathname part must equal the segment value exactly
//     (case-sensitive, no normalization).
//   - param: a pathname part must remain; its percent-decoded value is
//     bound under the segment name. A param never matches zero parts.
//   - catch-all: binds the percent-decoded remainder (possibly empty) and
//     terminates the walk.
//
// After the segment list is exhausted the match succeeds only if every
// pathname part was consumed, except when the walk ended via a catch-all,
// which always consumes the remainder.
//
// On failure no partial bindings are returned. Percent-decode failures
// propagate as an error rather than being swallowed as a non-match.
func MatchSegments(segments []Segment, pathname string) (Params, bool, error) {
	parts := routepath.SplitSegments(routepath.NormalizePath(pathname))
	params := make(Params, len(segments))

	i := 0
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentStatic:
			if i >= len(parts) || parts[i] != seg.Value {
				return nil, false, nil
			}
			i++

		case SegmentParam:
			if i >= len(parts) {
				return nil, false, nil
			}
			decoded, err := routepath.DecodeSegment(parts[i])
			if err != nil {
				return nil, false, err
			}
			params[seg.Name] = paramValue(decoded)
			i++

		case SegmentCatchAll:
			rest := make([]string, 0, len(parts)-i)
			for _, part := range parts[i:] {
				decoded, err := routepath.DecodeSegment(part)
				if err != nil {
					return nil, false, err
				}
				rest = append(rest, decoded)
			}
			params[seg.Name] = catchAllValue(rest)
			return params, true, nil
		}
	}

	if i != len(parts) {
		return nil, false, nil
	}
	return params, true, nil
}
