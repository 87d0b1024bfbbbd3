package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func decodePreview(t *testing.T, result *PreviewResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestPreview(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Preview(img, PrepareOptions{}, PreviewOptions{Scale: 1})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded := decodePreview(t, result)
	if decoded.Bounds().Dx() != 100 {
		t.Errorf("decoded width: got %d, want 100", decoded.Bounds().Dx())
	}
}

func TestPreview_ScaleKeepsPixelsSharp(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})

	result, err := Preview(src, PrepareOptions{}, PreviewOptions{Scale: 4})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	// Reported size is the traced size, not the magnified one
	if result.Width != 2 || result.Height != 1 || result.Scale != 4 {
		t.Errorf("got %dx%d scale %d, want 2x1 scale 4", result.Width, result.Height, result.Scale)
	}

	decoded := decodePreview(t, result)
	if decoded.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Fatalf("decoded bounds: got %v, want (0,0)-(8,4)", decoded.Bounds())
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			r, _, b, _ := decoded.At(x, y).RGBA()
			wantRed := x < 4
			if wantRed && (r>>8 != 255 || b != 0) {
				t.Fatalf("pixel (%d,%d) should be pure red", x, y)
			}
			if !wantRed && (b>>8 != 255 || r != 0) {
				t.Fatalf("pixel (%d,%d) should be pure blue", x, y)
			}
		}
	}
}

func TestPreview_InvalidScale(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)

	for _, scale := range []int{0, -2, MaxPreviewScale + 1} {
		if _, err := Preview(img, PrepareOptions{}, PreviewOptions{Scale: scale}); err == nil {
			t.Errorf("Preview should fail for scale %d", scale)
		}
	}
}

func TestPreview_PassesPrepareErrors(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)

	if _, err := Preview(img, PrepareOptions{Region: &Region{X1: 0, Y1: 0, X2: 20, Y2: 5}}, PreviewOptions{Scale: 1}); err == nil {
		t.Error("Preview should fail for out-of-bounds region")
	}
	if _, err := Preview(img, PrepareOptions{Threshold: intPtr(300)}, PreviewOptions{Scale: 1}); err == nil {
		t.Error("Preview should fail for invalid threshold")
	}
}

func TestPreview_Grid(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		src.SetNRGBA(0, y, color.NRGBA{255, 0, 0, 255})
		src.SetNRGBA(1, y, color.NRGBA{0, 0, 255, 255})
	}

	result, err := Preview(src, PrepareOptions{}, PreviewOptions{Scale: 4, Grid: true, GridColor: "#00ff00"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if !result.Grid {
		t.Error("Grid should be reported")
	}

	decoded := decodePreview(t, result)
	green := func(x, y int) bool {
		r, g, b, _ := decoded.At(x, y).RGBA()
		return r == 0 && g>>8 == 255 && b == 0
	}

	// Internal boundaries only: column 4 and row 4
	for i := 0; i < 8; i++ {
		if !green(4, i) {
			t.Errorf("pixel (4,%d) should be on the vertical grid line", i)
		}
		if !green(i, 4) {
			t.Errorf("pixel (%d,4) should be on the horizontal grid line", i)
		}
	}
	for _, p := range []image.Point{{0, 0}, {3, 3}, {5, 0}, {7, 7}, {0, 7}} {
		if green(p.X, p.Y) {
			t.Errorf("pixel %v should not be on a grid line", p)
		}
	}
}

func TestPreview_GridErrors(t *testing.T) {
	img := createInMemoryImage(4, 4, color.White)

	tests := []struct {
		name string
		view PreviewOptions
	}{
		{"scale too small", PreviewOptions{Scale: 2, Grid: true}},
		{"bad color", PreviewOptions{Scale: 4, Grid: true, GridColor: "#zzzzzz"}},
		{"bad length", PreviewOptions{Scale: 4, Grid: true, GridColor: "#fff"}},
		{"bad alpha", PreviewOptions{Scale: 4, Grid: true, GridColor: "#ffffffxx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Preview(img, PrepareOptions{}, tt.view); err == nil {
				t.Error("Preview should fail")
			}
		})
	}

	// Default color needs no explicit value
	if _, err := Preview(img, PrepareOptions{}, PreviewOptions{Scale: 3, Grid: true}); err != nil {
		t.Errorf("Preview with default grid color failed: %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"00ff00", color.NRGBA{0, 255, 0, 255}},
		{"#0000ff80", color.NRGBA{0, 0, 255, 128}},
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if err != nil {
			t.Errorf("parseHexColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHexColor(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#", "#12345", "#1234567"} {
		if _, err := parseHexColor(bad); err == nil {
			t.Errorf("parseHexColor(%q) should fail", bad)
		}
	}
}

func TestNamedRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)

	tests := []struct {
		name string
		want Region
	}{
		{"top-left", Region{0, 0, 50, 50}},
		{"top-right", Region{50, 0, 100, 50}},
		{"bottom-left", Region{0, 50, 50, 100}},
		{"bottom-right", Region{50, 50, 100, 100}},
		{"top-half", Region{0, 0, 100, 50}},
		{"bottom-half", Region{0, 50, 100, 100}},
		{"left-half", Region{0, 0, 50, 100}},
		{"right-half", Region{50, 0, 100, 100}},
		{"center", Region{25, 25, 75, 75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(bounds, tt.name)
			if err != nil {
				t.Fatalf("NamedRegion(%s) failed: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("NamedRegion(%s): got %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNamedRegion_OddDimensions(t *testing.T) {
	got, err := NamedRegion(image.Rect(0, 0, 101, 101), "bottom-right")
	if err != nil {
		t.Fatalf("NamedRegion failed: %v", err)
	}

	// 101/2 = 50, the extra column and row go to the bottom-right part
	if got != (Region{50, 50, 101, 101}) {
		t.Errorf("got %+v, want {50 50 101 101}", got)
	}
}

func TestNamedRegion_Invalid(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)

	for _, name := range []string{"invalid", "TOP-LEFT", "middle", "", "center-left"} {
		t.Run(name, func(t *testing.T) {
			if _, err := NamedRegion(bounds, name); err == nil {
				t.Errorf("NamedRegion should fail for %q", name)
			}
		})
	}

	// A single pixel has no left half
	if _, err := NamedRegion(image.Rect(0, 0, 1, 1), "left-half"); err == nil {
		t.Error("NamedRegion should fail when the area is empty")
	}
}

func TestNamedRegion_ContentMatchesQuadrant(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		area string
		want color.NRGBA
	}{
		{"top-left", color.NRGBA{255, 0, 0, 255}},
		{"top-right", color.NRGBA{0, 255, 0, 255}},
		{"bottom-left", color.NRGBA{0, 0, 255, 255}},
		{"bottom-right", color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.area, func(t *testing.T) {
			region, err := NamedRegion(img.Bounds(), tt.area)
			if err != nil {
				t.Fatalf("NamedRegion failed: %v", err)
			}
			palette, err := Palette(img, 0, &region)
			if err != nil {
				t.Fatalf("Palette failed: %v", err)
			}
			if len(palette.Colors) != 1 {
				t.Fatalf("area %s: got %d colors, want 1", tt.area, len(palette.Colors))
			}
			got := palette.Colors[0].RGBA
			if got.R != tt.want.R || got.G != tt.want.G || got.B != tt.want.B {
				t.Errorf("area %s: got %+v, want %v", tt.area, got, tt.want)
			}
		})
	}
}
