package vectorize

import (
	"image"
	"sort"
)

// pixelSides maps each neighbour offset to the side of the pixel cell facing
// it, oriented clockwise on screen so the pixel lies to the right of travel.
var pixelSides = [4]struct {
	offset     image.Point
	start, end image.Point
}{
	{offset: image.Pt(0, -1), start: image.Pt(0, 0), end: image.Pt(1, 0)},
	{offset: image.Pt(1, 0), start: image.Pt(1, 0), end: image.Pt(1, 1)},
	{offset: image.Pt(0, 1), start: image.Pt(1, 1), end: image.Pt(0, 1)},
	{offset: image.Pt(-1, 0), start: image.Pt(0, 1), end: image.Pt(0, 0)},
}

// Boundary returns the directed unit edges separating region id from
// everything outside it, sorted by start row, start column and end point.
// Every edge appears once; a single-pixel region yields its four sides.
func Boundary(s *Segmentation, id int) []Edge {
	if id < 0 || id >= len(s.Regions) {
		return nil
	}
	region := &s.Regions[id]

	var edges []Edge
	for _, p := range region.Pixels {
		for _, side := range pixelSides {
			n := p.Add(side.offset)
			if s.Label(n.X, n.Y) == id {
				continue
			}
			edges = append(edges, Edge{Start: p.Add(side.start), End: p.Add(side.end)})
		}
	}
	sortEdges(edges)
	return edges
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		return edgeLess(edges[i], edges[j])
	})
}
