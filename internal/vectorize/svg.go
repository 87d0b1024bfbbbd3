package vectorize

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strings"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN"
  "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg width="%d" height="%d"
     xmlns="http://www.w3.org/2000/svg" version="1.1">
`

const svgFooter = "</svg>\n"

// WriteSVG writes an SVG document of the given size with one <path> per
// color. Each loop contributes "M x,y", an "L x,y" per further vertex and a
// closing "Z" to the path data.
func WriteSVG(w io.Writer, width, height int, colors []ColorLoops) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, svgHeader, width, height)

	for _, cl := range colors {
		if len(cl.Loops) == 0 {
			continue
		}
		bw.WriteString(` <path d="`)
		for i, loop := range cl.Loops {
			if i > 0 {
				bw.WriteByte(' ')
			}
			writeLoop(bw, loop)
		}
		fmt.Fprintf(bw, "\" style=\"%s\" />\n", fillStyle(cl.Color))
	}

	bw.WriteString(svgFooter)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

// RenderSVG returns the document WriteSVG would produce.
func RenderSVG(width, height int, colors []ColorLoops) (string, error) {
	var sb strings.Builder
	if err := WriteSVG(&sb, width, height, colors); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// PathData returns the "d" attribute for a single loop.
func PathData(loop []image.Point) string {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	writeLoop(bw, loop)
	bw.Flush()
	return sb.String()
}

func writeLoop(w *bufio.Writer, loop []image.Point) {
	if len(loop) == 0 {
		return
	}
	fmt.Fprintf(w, "M %d,%d", loop[0].X, loop[0].Y)
	for _, p := range loop[1:] {
		fmt.Fprintf(w, " L %d,%d", p.X, p.Y)
	}
	w.WriteString(" Z")
}

func fillStyle(c Color) string {
	return fmt.Sprintf("fill:rgb(%d, %d, %d); fill-opacity:%.3f; stroke:none;", c.R, c.G, c.B, c.Opacity())
}

// WritePixelsSVG writes g as one unit <rect> per pixel, column by column.
// With opaque set, fully transparent pixels are omitted.
func WritePixelsSVG(w io.Writer, g *Grid, opaque bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, svgHeader, g.Width, g.Height)

	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			c := g.At(x, y)
			if opaque && c.A == 0 {
				continue
			}
			fmt.Fprintf(bw, "  <rect x=\"%d\" y=\"%d\" width=\"1\" height=\"1\" style=\"%s\" />\n", x, y, fillStyle(c))
		}
	}

	bw.WriteString(svgFooter)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

// RenderPixelsSVG returns the document WritePixelsSVG would produce.
func RenderPixelsSVG(g *Grid, opaque bool) (string, error) {
	var sb strings.Builder
	if err := WritePixelsSVG(&sb, g, opaque); err != nil {
		return "", err
	}
	return sb.String(), nil
}
