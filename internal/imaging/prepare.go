package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// Rect returns r as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Validate checks that r is non-empty and lies within bounds.
func (r Region) Validate(bounds image.Rectangle) error {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}

// PrepareOptions selects the preprocessing applied before tracing.
type PrepareOptions struct {
	// Region restricts the output to a sub-rectangle. Nil keeps the whole image.
	Region *Region

	// Threshold, when set, binarizes the image: pixels whose luminance is at
	// or above the level become white, the rest black. Luminance is taken
	// from the color alone, ignoring alpha. Alpha is binarized too: pixels
	// with alpha below AlphaCutoff become fully transparent, the rest fully
	// opaque. Valid levels are 0-255.
	Threshold *int
}

// AlphaCutoff is the alpha at or above which a thresholded pixel is kept
// opaque.
const AlphaCutoff = 128

// Prepare crops and binarizes img as requested and returns the result as an
// NRGBA image whose bounds start at (0, 0).
//
// Binarizing is useful for anti-aliased scans and glyph bitmaps, where every
// soft edge pixel would otherwise become a region of its own.
func Prepare(img image.Image, opts PrepareOptions) (*image.NRGBA, error) {
	if opts.Region != nil {
		if err := opts.Region.Validate(img.Bounds()); err != nil {
			return nil, err
		}
		img = imaging.Crop(img, opts.Region.Rect())
	}

	src := imaging.Clone(img)
	if opts.Threshold == nil {
		return src, nil
	}

	level := *opts.Threshold
	if level < 0 || level > 255 {
		return nil, fmt.Errorf("threshold %d outside range 0-255", level)
	}

	// segment.Threshold premultiplies, so rank an opaque copy.
	flat := imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		c.A = 255
		return c
	})
	binary := imaging.Clone(segment.Threshold(flat, uint8(level)))
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.NRGBAAt(x, y).A < AlphaCutoff {
				binary.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
	return binary, nil
}
