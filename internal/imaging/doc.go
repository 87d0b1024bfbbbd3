// Package imaging loads images and prepares them for vectorization.
//
// It provides a path-keyed image cache, basic metadata (dimensions, format,
// alpha), an exact-color palette summary, the preprocessing step that crops
// and binarizes an image before its regions are traced, and a magnified PNG
// preview of that preprocessed image, optionally overlaid with a pixel grid. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based. For regions, (x1,y1) is
// inclusive (top-left) and (x2,y2) is exclusive (bottom-right). NamedRegion
// maps names such as "top-left" or "center" to regions.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Prepare and Palette are
// stateless and never modify their input image.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or empty regions (x1 >= x2 or y1 >= y2)
//   - Threshold levels outside 0-255
//   - Preview scales outside 1-32, or below 3 when a grid is requested
//   - Grid colors that are not #rrggbb or #rrggbbaa
//   - Images larger than the cache's pixel limit
//   - File I/O and decoding errors during image loading
package imaging
