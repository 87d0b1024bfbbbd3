package imaging

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// PaletteEntry is one exact color and how often it occurs.
type PaletteEntry struct {
	Hex        string    `json:"hex"`        // "#rrggbb", alpha excluded
	RGBA       RGBAColor `json:"rgba"`       // exact channels, alpha included
	HSL        HSLColor  `json:"hsl"`        // perceptual form of the RGB part
	Pixels     int       `json:"pixels"`     // number of pixels with this color
	Percentage float64   `json:"percentage"` // share of analyzed pixels (0-100)
}

// PaletteResult lists the most frequent exact colors of an image.
type PaletteResult struct {
	DistinctColors int            `json:"distinct_colors"`
	TotalPixels    int            `json:"total_pixels"`
	Colors         []PaletteEntry `json:"colors"`
}

// Palette counts the exact colors of img, or of region when it is non-nil,
// and returns the count most frequent ones.
//
// Unlike a dominant-color summary, colors are not quantized: the vectorizer
// splits regions on any channel difference, so DistinctColors is a lower
// bound on the number of regions a trace will produce. A high count on a
// flat-looking image usually means anti-aliasing or compression noise, which
// the threshold option removes.
//
// Colors are ordered by pixel count, most common first, with ties broken
// by hex and then alpha so the order is stable.
func Palette(img image.Image, count int, region *Region) (*PaletteResult, error) {
	bounds := img.Bounds()
	if region != nil {
		if err := region.Validate(bounds); err != nil {
			return nil, err
		}
		bounds = region.Rect()
	}

	counts := make(map[color.NRGBA]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			counts[c]++
			total++
		}
	}

	entries := make([]PaletteEntry, 0, len(counts))
	for c, n := range counts {
		entries = append(entries, newPaletteEntry(c, n, total))
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Pixels != b.Pixels {
			return a.Pixels > b.Pixels
		}
		if a.Hex != b.Hex {
			return a.Hex < b.Hex
		}
		return a.RGBA.A < b.RGBA.A
	})

	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}

	return &PaletteResult{
		DistinctColors: len(counts),
		TotalPixels:    total,
		Colors:         entries,
	}, nil
}

func newPaletteEntry(c color.NRGBA, pixels, total int) PaletteEntry {
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := cf.Hsl()

	return PaletteEntry{
		Hex:  cf.Hex(),
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Pixels:     pixels,
		Percentage: math.Round(float64(pixels)/float64(total)*10000) / 100,
	}
}
