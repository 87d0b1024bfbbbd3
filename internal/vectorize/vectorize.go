package vectorize

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options controls a tracing run.
type Options struct {
	// Opaque skips pixels whose alpha is zero; they produce no region and
	// no path.
	Opaque bool

	// KeepEveryPoint disables merging of collinear unit edges, so every
	// lattice corner along the boundary becomes a vertex.
	KeepEveryPoint bool

	// Workers bounds how many regions are traced concurrently.
	// Zero or less means runtime.NumCPU().
	Workers int
}

// ColorLoops holds every outline loop of one color. Each loop is a closed
// polygon given by its vertices; the closing edge back to the first vertex
// is implied.
type ColorLoops struct {
	Color Color           `json:"color"`
	Loops [][]image.Point `json:"loops"`
}

// Outline is the result of tracing a grid.
type Outline struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Colors   []ColorLoops `json:"colors"`
	Regions  int          `json:"regions"`
	Loops    int          `json:"loops"`
	Vertices int          `json:"vertices"`
}

// ImageToVectorOutline traces every same-color region of g and returns the
// loops grouped by color, in order of each color's first appearance when
// scanning rows top to bottom.
func ImageToVectorOutline(ctx context.Context, g *Grid, opts Options) ([]ColorLoops, error) {
	o, err := Trace(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	return o.Colors, nil
}

// Trace runs segmentation, boundary extraction and stitching over g and
// returns the outline with summary counts.
//
// Regions are independent, so their boundaries are extracted and stitched
// in parallel. Results are collected per region id and merged afterwards,
// which keeps the output identical for any worker count. The first failing
// region cancels the remaining work. A context that is already done fails the
// call even when the grid has no regions.
func Trace(ctx context.Context, g *Grid, opts Options) (*Outline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()

	seg := Segment(g, opts.Opaque)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	traced := make([][]Loop, len(seg.Regions))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for id := range seg.Regions {
		id := id
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			loops, err := Stitch(Boundary(seg, id), opts.KeepEveryPoint)
			if err != nil {
				return fmt.Errorf("failed to trace region %d (%s): %w", id, seg.Regions[id].Color, err)
			}
			traced[id] = loops
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &Outline{
		Width:   g.Width,
		Height:  g.Height,
		Regions: len(seg.Regions),
	}
	for _, group := range seg.ByColor() {
		cl := ColorLoops{Color: group.Color}
		for _, r := range group.Regions {
			for _, loop := range traced[r.ID] {
				vertices := loop.Vertices()
				cl.Loops = append(cl.Loops, vertices)
				out.Loops++
				out.Vertices += len(vertices)
			}
		}
		out.Colors = append(out.Colors, cl)
	}

	Logger().Debug("traced outline",
		"width", g.Width,
		"height", g.Height,
		"colors", len(out.Colors),
		"regions", out.Regions,
		"loops", out.Loops,
		"vertices", out.Vertices,
		"elapsed", time.Since(started))

	return out, nil
}
