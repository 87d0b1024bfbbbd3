package vectorize

import (
	"fmt"
	"image"
)

// Direction is one of the four axis-aligned unit directions on screen.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var directionVectors = [...]image.Point{
	Up:    {0, -1},
	Right: {1, 0},
	Down:  {0, 1},
	Left:  {-1, 0},
}

// turnPreference lists, for each heading, the directions the stitcher tries
// next: straight on, then a left turn, then a right turn.
var turnPreference = [...][3]Direction{
	Up:    {Up, Left, Right},
	Right: {Right, Up, Down},
	Down:  {Down, Right, Left},
	Left:  {Left, Down, Up},
}

// Vector returns the unit step for d.
func (d Direction) Vector() image.Point {
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Normalize reduces an axis-aligned vector of any positive length to its
// Direction. Zero and diagonal vectors yield ErrInvalidGeometry.
func Normalize(v image.Point) (Direction, error) {
	switch {
	case v.X == 0 && v.Y < 0:
		return Up, nil
	case v.X > 0 && v.Y == 0:
		return Right, nil
	case v.X == 0 && v.Y > 0:
		return Down, nil
	case v.X < 0 && v.Y == 0:
		return Left, nil
	}
	return 0, fmt.Errorf("cannot normalize vector (%d,%d): %w", v.X, v.Y, ErrInvalidGeometry)
}

// Edge is a directed segment on the pixel-corner lattice. Boundary produces
// unit edges; the stitcher may lengthen them when merging collinear runs.
type Edge struct {
	Start image.Point
	End   image.Point
}

// Direction returns the heading of e.
func (e Edge) Direction() (Direction, error) {
	return Normalize(e.End.Sub(e.Start))
}

// edgeLess orders edges by start row, start column, then end point.
func edgeLess(a, b Edge) bool {
	if a.Start.Y != b.Start.Y {
		return a.Start.Y < b.Start.Y
	}
	if a.Start.X != b.Start.X {
		return a.Start.X < b.Start.X
	}
	if a.End.Y != b.End.Y {
		return a.End.Y < b.End.Y
	}
	return a.End.X < b.End.X
}

// Loop is a closed sequence of edges where each edge ends where the next one
// starts and the last edge ends at the first edge's start.
type Loop []Edge

// Closed reports whether l is non-empty, connected and returns to its start.
func (l Loop) Closed() bool {
	if len(l) == 0 {
		return false
	}
	for i := 1; i < len(l); i++ {
		if l[i-1].End != l[i].Start {
			return false
		}
	}
	return l[len(l)-1].End == l[0].Start
}

// Vertices returns the polygon corners of l, one per edge start.
func (l Loop) Vertices() []image.Point {
	pts := make([]image.Point, len(l))
	for i, e := range l {
		pts[i] = e.Start
	}
	return pts
}

// SignedArea returns the shoelace area of l in screen coordinates. It is
// positive for clockwise loops (outer boundaries) and negative for
// counter-clockwise loops (holes).
func (l Loop) SignedArea() int {
	sum := 0
	for _, e := range l {
		sum += e.Start.X*e.End.Y - e.End.X*e.Start.Y
	}
	return sum / 2
}

// Clockwise reports whether l winds clockwise on screen.
func (l Loop) Clockwise() bool {
	return l.SignedArea() > 0
}
