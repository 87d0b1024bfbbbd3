package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// MaxPreviewScale bounds the magnification accepted by Preview.
const MaxPreviewScale = 32

// MinGridScale is the smallest scale at which a pixel grid can be drawn
// without hiding the pixels.
const MinGridScale = 3

// DefaultGridColor is used when PreviewOptions.GridColor is empty.
const DefaultGridColor = "#80808080"

// majorGridEvery is the spacing, in source pixels, of the emphasized grid
// lines.
const majorGridEvery = 10

// PreviewOptions controls how a prepared image is rendered.
type PreviewOptions struct {
	// Scale is the integer magnification, 1-MaxPreviewScale.
	Scale int

	// Grid draws a line along every pixel boundary. Every tenth line is
	// drawn fully opaque so coordinates can be counted. Needs a Scale of at
	// least MinGridScale.
	Grid bool

	// GridColor is "#rrggbb" or "#rrggbbaa". Empty means DefaultGridColor.
	GridColor string
}

// PreviewResult contains a PNG rendering of a prepared image.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Scale       int    `json:"scale"`
	Grid        bool   `json:"grid"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview prepares img with opts and encodes the result as a base64 PNG,
// magnified and optionally gridded as view asks.
//
// Scaling uses nearest-neighbour sampling so every source pixel becomes a
// Scale×Scale block with its exact color. Width and Height describe the
// prepared image before magnification, matching the coordinates a trace of
// the same options would use.
func Preview(img image.Image, opts PrepareOptions, view PreviewOptions) (*PreviewResult, error) {
	scale := view.Scale
	if scale < 1 || scale > MaxPreviewScale {
		return nil, fmt.Errorf("scale %d outside range 1-%d", scale, MaxPreviewScale)
	}

	var gridColor color.NRGBA
	if view.Grid {
		if scale < MinGridScale {
			return nil, fmt.Errorf("grid needs a scale of at least %d, got %d", MinGridScale, scale)
		}
		hex := view.GridColor
		if hex == "" {
			hex = DefaultGridColor
		}
		c, err := parseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid grid color %q: %w", hex, err)
		}
		gridColor = c
	}

	prepared, err := Prepare(img, opts)
	if err != nil {
		return nil, err
	}

	w, h := prepared.Bounds().Dx(), prepared.Bounds().Dy()
	out := prepared
	if scale > 1 {
		out = imaging.Resize(prepared, w*scale, h*scale, imaging.NearestNeighbor)
	}
	if view.Grid {
		drawPixelGrid(out, w, h, scale, gridColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       w,
		Height:      h,
		Scale:       scale,
		Grid:        view.Grid,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// drawPixelGrid blends a one-pixel line over dst at every internal boundary
// of a w×h source image magnified by scale.
func drawPixelGrid(dst *image.NRGBA, w, h, scale int, c color.NRGBA) {
	minor := image.NewUniform(c)
	major := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	height, width := h*scale, w*scale

	for x := 1; x < w; x++ {
		src := minor
		if x%majorGridEvery == 0 {
			src = major
		}
		draw.Draw(dst, image.Rect(x*scale, 0, x*scale+1, height), src, image.Point{}, draw.Over)
	}
	for y := 1; y < h; y++ {
		src := minor
		if y%majorGridEvery == 0 {
			src = major
		}
		draw.Draw(dst, image.Rect(0, y*scale, width, y*scale+1), src, image.Point{}, draw.Over)
	}
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	alpha := uint8(255)
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, err
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("want 6 or 8 hex digits, got %d", len(hex))
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// NamedRegion resolves a named area of bounds to a Region.
//
// Supported names: top-left, top-right, bottom-left, bottom-right,
// top-half, bottom-half, left-half, right-half and center (the middle 50%
// in each direction). Odd sizes give the extra row or column to the
// right/bottom part.
func NamedRegion(bounds image.Rectangle, name string) (Region, error) {
	x0, y0 := bounds.Min.X, bounds.Min.Y
	x1, y1 := bounds.Max.X, bounds.Max.Y
	midX := x0 + bounds.Dx()/2
	midY := y0 + bounds.Dy()/2

	var r Region
	switch name {
	case "top-left":
		r = Region{x0, y0, midX, midY}
	case "top-right":
		r = Region{midX, y0, x1, midY}
	case "bottom-left":
		r = Region{x0, midY, midX, y1}
	case "bottom-right":
		r = Region{midX, midY, x1, y1}
	case "top-half":
		r = Region{x0, y0, x1, midY}
	case "bottom-half":
		r = Region{x0, midY, x1, y1}
	case "left-half":
		r = Region{x0, y0, midX, y1}
	case "right-half":
		r = Region{midX, y0, x1, y1}
	case "center":
		qW, qH := bounds.Dx()/4, bounds.Dy()/4
		r = Region{x0 + qW, y0 + qH, x1 - qW, y1 - qH}
	default:
		return Region{}, fmt.Errorf("unknown area: %s", name)
	}

	if err := r.Validate(bounds); err != nil {
		return Region{}, fmt.Errorf("area %s is empty for a %dx%d image", name, bounds.Dx(), bounds.Dy())
	}
	return r, nil
}
