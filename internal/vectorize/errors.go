package vectorize

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidGeometry is returned when an edge direction is not a
	// non-zero, axis-aligned vector.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrBoundaryInconsistency is returned when the stitcher finds no edge to
	// continue an open loop.
	ErrBoundaryInconsistency = errors.New("boundary inconsistency")
)

// StitchError describes where stitching an edge set broke down.
// It unwraps to ErrBoundaryInconsistency.
type StitchError struct {
	At        image.Point // dangling loop endpoint
	Heading   Direction   // direction of the last edge reaching At
	Remaining int         // edges not yet placed in any loop
}

func (e *StitchError) Error() string {
	return fmt.Sprintf("%v: no connecting edge at (%d,%d) heading %s, %d edges unplaced",
		ErrBoundaryInconsistency, e.At.X, e.At.Y, e.Heading, e.Remaining)
}

func (e *StitchError) Unwrap() error {
	return ErrBoundaryInconsistency
}
