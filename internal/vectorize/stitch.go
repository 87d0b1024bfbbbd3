package vectorize

import "image"

// Stitch joins an unordered set of boundary edges into closed loops that use
// every edge exactly once.
//
// Each loop starts at the smallest remaining edge (top-most, left-most start)
// and is extended one edge at a time from its current endpoint. At every
// joint the candidates are tried straight on first, then turning left, then
// turning right; the first unused edge wins. Preferring left over right means
// two diagonally touching pixels of one region are walked as a single loop.
//
// Unless keepEveryPoint is set, straight continuations lengthen the current
// edge instead of adding a vertex, and a closed loop whose first and last
// edges are collinear is folded into one segment.
//
// A loop that cannot be continued yields a *StitchError wrapping
// ErrBoundaryInconsistency. Edges produced by Boundary always stitch.
func Stitch(edges []Edge, keepEveryPoint bool) ([]Loop, error) {
	if len(edges) == 0 {
		return nil, nil
	}

	ordered := make([]Edge, len(edges))
	copy(ordered, edges)
	sortEdges(ordered)

	remaining := make(map[Edge]struct{}, len(ordered))
	for _, e := range ordered {
		remaining[e] = struct{}{}
	}

	var (
		loops  []Loop
		loop   Loop
		cursor int
	)
	for len(remaining) > 0 {
		if len(loop) == 0 {
			for {
				if _, ok := remaining[ordered[cursor]]; ok {
					break
				}
				cursor++
			}
			first := ordered[cursor]
			delete(remaining, first)
			loop = Loop{first}
		}

		last := loop[len(loop)-1]
		heading, err := last.Direction()
		if err != nil {
			return nil, err
		}

		next, straight, ok := nextEdge(remaining, last.End, heading)
		if !ok {
			return nil, &StitchError{At: last.End, Heading: heading, Remaining: len(remaining)}
		}
		delete(remaining, next)
		if straight && !keepEveryPoint {
			loop[len(loop)-1].End = next.End
		} else {
			loop = append(loop, next)
		}

		if loop[0].Start == loop[len(loop)-1].End {
			loop, err = closeLoop(loop, keepEveryPoint)
			if err != nil {
				return nil, err
			}
			loops = append(loops, loop)
			loop = nil
		}
	}

	if len(loop) > 0 {
		last := loop[len(loop)-1]
		heading, err := last.Direction()
		if err != nil {
			return nil, err
		}
		return nil, &StitchError{At: last.End, Heading: heading}
	}
	return loops, nil
}

// nextEdge picks the preferred unused unit edge leaving at.
func nextEdge(remaining map[Edge]struct{}, at image.Point, heading Direction) (Edge, bool, bool) {
	for i, d := range turnPreference[heading] {
		candidate := Edge{Start: at, End: at.Add(d.Vector())}
		if _, ok := remaining[candidate]; ok {
			return candidate, i == 0, true
		}
	}
	return Edge{}, false, false
}

// closeLoop folds the first edge into the last when they are collinear.
func closeLoop(loop Loop, keepEveryPoint bool) (Loop, error) {
	if keepEveryPoint || len(loop) < 2 {
		return loop, nil
	}
	first, err := loop[0].Direction()
	if err != nil {
		return nil, err
	}
	last, err := loop[len(loop)-1].Direction()
	if err != nil {
		return nil, err
	}
	if first != last {
		return loop, nil
	}
	loop[len(loop)-1].End = loop[0].End
	return loop[1:], nil
}
