package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"
)

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Once an image is loaded, subsequent Load calls for the same path return the
// cached copy without disk I/O. The decoder's format name is remembered with
// the image so ImageInfo reports what the file actually contains.
//
// A cache created with NewImageCacheWithLimit refuses images whose pixel
// count exceeds the limit. The check runs on the header alone, before the
// pixel data is decoded, so oversized files never reach memory.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCacheWithLimit(4096 * 4096)
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/image.png") // Optional: free memory
type ImageCache struct {
	mu        sync.RWMutex
	images    map[string]cachedImage
	maxPixels int
}

type cachedImage struct {
	img    image.Image
	format string
}

// NewImageCache creates an empty cache with no size limit.
func NewImageCache() *ImageCache {
	return NewImageCacheWithLimit(0)
}

// NewImageCacheWithLimit creates an empty cache that rejects images with
// more than maxPixels pixels. A limit of zero or less disables the check.
func NewImageCacheWithLimit(maxPixels int) *ImageCache {
	return &ImageCache{
		images:    make(map[string]cachedImage),
		maxPixels: maxPixels,
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, and GIF.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the file
//     (e.g., *image.NRGBA for most PNGs, *image.YCbCr for JPEG).
//   - error: Non-nil if the file cannot be opened or decoded, or if the image
//     exceeds the cache's pixel limit.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if c.maxPixels > 0 {
		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return cachedImage{}, fmt.Errorf("failed to decode image header: %w", err)
		}
		if pixels := cfg.Width * cfg.Height; pixels > c.maxPixels {
			return cachedImage{}, fmt.Errorf("image %dx%d has %d pixels, limit is %d",
				cfg.Width, cfg.Height, pixels, c.maxPixels)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return cachedImage{}, fmt.Errorf("failed to rewind image: %w", err)
		}
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	entry := cachedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()

	return entry, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes the image cached under path, if any. The next Load for
// this path reads from disk again.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that read the file: "png", "jpeg" or "gif".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image carries an alpha channel. Only
	// images with alpha produce transparent regions worth skipping with the
	// opaque option.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
//
// Color depth and alpha presence are derived from the decoded Go type:
//   - *image.RGBA, *image.NRGBA -> 8-bit with alpha
//   - *image.RGBA64, *image.NRGBA64 -> 16-bit with alpha
//   - *image.Gray16 -> 16-bit
//   - *image.Paletted -> alpha if any palette entry is not fully opaque
//   - everything else -> 8-bit without alpha
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img := entry.img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	case *image.Paletted:
		for _, c := range img.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				hasAlpha = true
				break
			}
		}
	}

	bounds := entry.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        entry.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
