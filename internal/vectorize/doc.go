// Package vectorize converts raster images into SVG outlines by tracing the
// boundaries of same-color pixel regions.
//
// Conversion runs in three stages:
//
//  1. Segmentation: the pixel grid is partitioned into maximal 4-connected
//     regions of identical RGBA color using a flood fill (Segment).
//  2. Boundary extraction: every region pixel contributes one directed unit
//     edge for each side that does not touch another pixel of the same
//     region (Boundary).
//  3. Stitching: the unordered edge set of a region is walked into closed
//     loops, optionally merging collinear runs into single segments (Stitch).
//
// ImageToVectorOutline and Trace run the whole pipeline, and WriteSVG renders
// the result as one <path> per color.
//
// # Coordinate System
//
// Pixels are addressed 0-based with the origin at the top-left corner, X
// increasing rightward and Y increasing downward. Edges live on the lattice of
// pixel corners, so pixel (x, y) is the unit cell spanning (x, y) to
// (x+1, y+1).
//
// # Orientation
//
// Boundary edges run clockwise on screen around solid material: walking any
// edge, the region lies on the right-hand side. Outer boundaries therefore
// wind clockwise and hole boundaries counter-clockwise, which renders holes
// correctly under the default nonzero fill rule. Loop.SignedArea and
// Loop.Clockwise expose the winding to callers that need to tell them apart.
//
// # Determinism
//
// Output depends only on the input grid and options. Boundary edges are
// sorted, each loop starts at its top-most, left-most remaining vertex, and
// the stitcher resolves joints through a fixed turn preference (straight,
// then left, then right). Tracing several regions in parallel does not change
// the result.
//
// # Errors
//
// The pipeline fails only on internal inconsistencies: ErrInvalidGeometry for
// a degenerate edge direction and ErrBoundaryInconsistency when an edge set
// cannot be closed into loops. Neither can occur for edges produced by
// Boundary; both indicate corrupted or externally supplied input.
package vectorize
