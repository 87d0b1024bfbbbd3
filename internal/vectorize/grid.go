package vectorize

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied 8-bit RGBA color. Two pixels belong to the
// same region only if all four channels match.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NRGBA returns c as a standard library color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns the "#rrggbb" form of c, ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// Opacity returns the alpha channel scaled to [0, 1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 255.0
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// Grid is a width x height array of pixel colors stored row-major.
type Grid struct {
	Width  int
	Height int
	Pix    []Color
}

// NewGrid returns a grid of fully transparent black pixels.
func NewGrid(width, height int) *Grid {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// GridFromImage copies img into a grid. The top-left of img.Bounds() becomes
// (0, 0). Colors are converted to non-premultiplied 8-bit RGBA.
func GridFromImage(img image.Image) *Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < g.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < g.Width; x++ {
				i := x * 4
				g.Pix[y*g.Width+x] = Color{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}
			}
		}
		return g
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			g.Pix[y*g.Width+x] = Color{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return g
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the color at (x, y). The coordinates must be in bounds.
func (g *Grid) At(x, y int) Color {
	return g.Pix[y*g.Width+x]
}

// Set stores c at (x, y). Out-of-bounds coordinates are ignored.
func (g *Grid) Set(x, y int, c Color) {
	if !g.In(x, y) {
		return
	}
	g.Pix[y*g.Width+x] = c
}
