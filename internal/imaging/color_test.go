package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPalette(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Palette(img, 0, nil)
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}

	if result.DistinctColors != 4 {
		t.Errorf("DistinctColors: got %d, want 4", result.DistinctColors)
	}
	if result.TotalPixels != 10000 {
		t.Errorf("TotalPixels: got %d, want 10000", result.TotalPixels)
	}

	// Equal counts fall back to hex order
	want := []string{"#0000ff", "#00ff00", "#ff0000", "#ffffff"}
	if len(result.Colors) != len(want) {
		t.Fatalf("Colors: got %d entries, want %d", len(result.Colors), len(want))
	}
	for i, hex := range want {
		entry := result.Colors[i]
		if entry.Hex != hex {
			t.Errorf("Colors[%d].Hex: got %s, want %s", i, entry.Hex, hex)
		}
		if entry.Pixels != 2500 {
			t.Errorf("Colors[%d].Pixels: got %d, want 2500", i, entry.Pixels)
		}
		if entry.Percentage != 25 {
			t.Errorf("Colors[%d].Percentage: got %v, want 25", i, entry.Percentage)
		}
	}
}

func TestPalette_OrderedByFrequency(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 255, 255, 255}).(*image.RGBA)
	for x := 0; x < 10; x++ {
		img.Set(x, 0, color.RGBA{0, 0, 0, 255})
	}
	for x := 0; x < 3; x++ {
		img.Set(x, 1, color.RGBA{255, 0, 0, 255})
	}

	result, err := Palette(img, 16, nil)
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}

	tests := []struct {
		hex        string
		pixels     int
		percentage float64
	}{
		{"#ffffff", 87, 87},
		{"#000000", 10, 10},
		{"#ff0000", 3, 3},
	}

	if len(result.Colors) != len(tests) {
		t.Fatalf("Colors: got %d entries, want %d", len(result.Colors), len(tests))
	}
	for i, tt := range tests {
		got := result.Colors[i]
		if got.Hex != tt.hex || got.Pixels != tt.pixels || got.Percentage != tt.percentage {
			t.Errorf("Colors[%d]: got (%s, %d, %v), want (%s, %d, %v)",
				i, got.Hex, got.Pixels, got.Percentage, tt.hex, tt.pixels, tt.percentage)
		}
	}
}

func TestPalette_Count(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		count int
		want  int
	}{
		{0, 4},
		{-1, 4},
		{1, 1},
		{2, 2},
		{10, 4},
	}

	for _, tt := range tests {
		result, err := Palette(img, tt.count, nil)
		if err != nil {
			t.Fatalf("Palette(count=%d) failed: %v", tt.count, err)
		}
		if len(result.Colors) != tt.want {
			t.Errorf("Palette(count=%d): got %d colors, want %d", tt.count, len(result.Colors), tt.want)
		}
		if result.DistinctColors != 4 {
			t.Errorf("Palette(count=%d): DistinctColors got %d, want 4", tt.count, result.DistinctColors)
		}
	}
}

func TestPalette_WithRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	// Only the red top-left quadrant
	result, err := Palette(img, 0, &Region{X1: 0, Y1: 0, X2: 50, Y2: 50})
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}

	if result.TotalPixels != 2500 {
		t.Errorf("TotalPixels: got %d, want 2500", result.TotalPixels)
	}
	if len(result.Colors) != 1 {
		t.Fatalf("Colors: got %d entries, want 1", len(result.Colors))
	}
	if result.Colors[0].Hex != "#ff0000" {
		t.Errorf("Hex: got %s, want #ff0000", result.Colors[0].Hex)
	}
	if result.Colors[0].Percentage != 100 {
		t.Errorf("Percentage: got %v, want 100", result.Colors[0].Percentage)
	}
}

func TestPalette_InvalidRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name   string
		region Region
	}{
		{"outside bounds", Region{X1: 0, Y1: 0, X2: 150, Y2: 50}},
		{"negative origin", Region{X1: -1, Y1: 0, X2: 10, Y2: 10}},
		{"empty", Region{X1: 20, Y1: 20, X2: 20, Y2: 30}},
		{"inverted", Region{X1: 30, Y1: 30, X2: 10, Y2: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := tt.region
			if _, err := Palette(img, 0, &region); err == nil {
				t.Error("Palette should fail for invalid region")
			}
		})
	}
}

func TestPalette_AlphaIsDistinct(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	// (2,0) and (3,0) stay fully transparent black

	result, err := Palette(img, 0, nil)
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}

	if result.DistinctColors != 2 {
		t.Fatalf("DistinctColors: got %d, want 2", result.DistinctColors)
	}
	// Same hex and count, so alpha decides the order
	if result.Colors[0].RGBA.A != 0 || result.Colors[1].RGBA.A != 255 {
		t.Errorf("alpha order: got %d then %d, want 0 then 255",
			result.Colors[0].RGBA.A, result.Colors[1].RGBA.A)
	}
	for i, entry := range result.Colors {
		if entry.Hex != "#000000" {
			t.Errorf("Colors[%d].Hex: got %s, want #000000", i, entry.Hex)
		}
	}
}

func TestPalette_HSL(t *testing.T) {
	tests := []struct {
		name  string
		color color.RGBA
		want  HSLColor
	}{
		{"red", color.RGBA{255, 0, 0, 255}, HSLColor{H: 0, S: 100, L: 50}},
		{"green", color.RGBA{0, 255, 0, 255}, HSLColor{H: 120, S: 100, L: 50}},
		{"blue", color.RGBA{0, 0, 255, 255}, HSLColor{H: 240, S: 100, L: 50}},
		{"white", color.RGBA{255, 255, 255, 255}, HSLColor{H: 0, S: 0, L: 100}},
		{"black", color.RGBA{0, 0, 0, 255}, HSLColor{H: 0, S: 0, L: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Palette(createInMemoryImage(2, 2, tt.color), 1, nil)
			if err != nil {
				t.Fatalf("Palette failed: %v", err)
			}
			got := result.Colors[0].HSL
			if abs(got.H-tt.want.H) > 1 || abs(got.S-tt.want.S) > 1 || abs(got.L-tt.want.L) > 1 {
				t.Errorf("HSL: got (%d,%d,%d), want (%d,%d,%d)",
					got.H, got.S, got.L, tt.want.H, tt.want.S, tt.want.L)
			}
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
