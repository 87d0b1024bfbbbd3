package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/image-vectorize-mcp/internal/imaging"
	"github.com/ironsheep/image-vectorize-mcp/internal/vectorize"
)

// maxRegionDetails bounds the per-region list returned by image_regions.
const maxRegionDetails = 256

// defaultPaletteCount is the number of colors image_palette returns when
// the caller gives no count.
const defaultPaletteCount = 16

const svgMimeType = "image/svg+xml"

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_vectorize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug() {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/vectorize function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Analysis
	case "image_palette":
		return s.handleImagePalette(args)
	case "image_regions":
		return s.handleImageRegions(args)
	case "image_preview":
		return s.handleImagePreview(args)

	// Vectorization
	case "image_vectorize":
		return s.handleImageVectorize(ctx, args)
	case "image_vectorize_pixels":
		return s.handleImageVectorizePixels(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadImage returns the cached image at path.
func (s *Server) loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	return s.cache.Load(path)
}

// areaArgs selects the part of an image a tool works on, either as explicit
// coordinates or as a named area.
type areaArgs struct {
	Region *imaging.Region `json:"region"`
	Area   string          `json:"area"`
}

// resolve returns the selected rectangle of bounds, or nil for the whole
// image.
func (a areaArgs) resolve(bounds image.Rectangle) (*imaging.Region, error) {
	if a.Region != nil && a.Area != "" {
		return nil, errors.New("give either region or area, not both")
	}
	if a.Area == "" {
		return a.Region, nil
	}
	r, err := imaging.NamedRegion(bounds, a.Area)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// prepareArgs carries the preprocessing arguments shared by the tracing
// tools.
type prepareArgs struct {
	Path string `json:"path"`
	areaArgs
	Threshold *int `json:"threshold"`
}

// prepare loads the image named by a and applies its area and threshold.
func (s *Server) prepare(a prepareArgs) (*image.NRGBA, error) {
	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	region, err := a.resolve(img.Bounds())
	if err != nil {
		return nil, err
	}
	return imaging.Prepare(img, imaging.PrepareOptions{
		Region:    region,
		Threshold: a.Threshold,
	})
}

func (s *Server) opaque(v *bool) bool {
	if v == nil {
		return s.cfg.Vectorize.Opaque
	}
	return *v
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Analysis Handlers ===

type imagePaletteArgs struct {
	Path string `json:"path"`
	areaArgs
	Count *int `json:"count"`
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	var a imagePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	count := defaultPaletteCount
	if a.Count != nil {
		count = *a.Count
	}

	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	region, err := a.resolve(img.Bounds())
	if err != nil {
		return nil, err
	}
	return imaging.Palette(img, count, region)
}

type imageRegionsArgs struct {
	prepareArgs
	Opaque *bool `json:"opaque"`
}

// ColorRegionCount summarizes the regions of one color.
type ColorRegionCount struct {
	Hex     string          `json:"hex"`
	RGBA    vectorize.Color `json:"rgba"`
	Regions int             `json:"regions"`
	Pixels  int             `json:"pixels"`
}

// RegionDetail describes one connected region.
type RegionDetail struct {
	ID     int            `json:"id"`
	Hex    string         `json:"hex"`
	Alpha  uint8          `json:"alpha"`
	Pixels int            `json:"pixels"`
	Bounds imaging.Region `json:"bounds"`
}

// RegionsResult is the image_regions result.
type RegionsResult struct {
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	TotalRegions int                `json:"total_regions"`
	Colors       []ColorRegionCount `json:"colors"`
	Regions      []RegionDetail     `json:"regions"`
	Truncated    bool               `json:"truncated"`
}

func (s *Server) handleImageRegions(args json.RawMessage) (interface{}, error) {
	var a imageRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	prepared, err := s.prepare(a.prepareArgs)
	if err != nil {
		return nil, err
	}

	grid := vectorize.GridFromImage(prepared)
	seg := vectorize.Segment(grid, s.opaque(a.Opaque))
	return summarizeRegions(seg), nil
}

func summarizeRegions(seg *vectorize.Segmentation) *RegionsResult {
	result := &RegionsResult{
		Width:        seg.Width,
		Height:       seg.Height,
		TotalRegions: len(seg.Regions),
		Colors:       []ColorRegionCount{},
		Regions:      []RegionDetail{},
	}

	for _, group := range seg.ByColor() {
		count := ColorRegionCount{
			Hex:     group.Color.Hex(),
			RGBA:    group.Color,
			Regions: len(group.Regions),
		}
		for _, r := range group.Regions {
			count.Pixels += len(r.Pixels)
		}
		result.Colors = append(result.Colors, count)
	}

	for i := range seg.Regions {
		if i == maxRegionDetails {
			result.Truncated = true
			break
		}
		r := &seg.Regions[i]
		b := r.Bounds()
		result.Regions = append(result.Regions, RegionDetail{
			ID:     r.ID,
			Hex:    r.Color.Hex(),
			Alpha:  r.Color.A,
			Pixels: len(r.Pixels),
			Bounds: imaging.Region{X1: b.Min.X, Y1: b.Min.Y, X2: b.Max.X, Y2: b.Max.Y},
		})
	}
	return result
}

type imagePreviewArgs struct {
	prepareArgs
	Scale     int    `json:"scale"`
	Grid      bool   `json:"grid"`
	GridColor string `json:"grid_color"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}

	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	region, err := a.resolve(img.Bounds())
	if err != nil {
		return nil, err
	}
	return imaging.Preview(img,
		imaging.PrepareOptions{Region: region, Threshold: a.Threshold},
		imaging.PreviewOptions{Scale: a.Scale, Grid: a.Grid, GridColor: a.GridColor})
}

// === Vectorization Handlers ===

type imageVectorizeArgs struct {
	prepareArgs
	Opaque         *bool `json:"opaque"`
	KeepEveryPoint *bool `json:"keep_every_point"`
}

// VectorizeResult is the image_vectorize result.
type VectorizeResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Colors   int    `json:"colors"`
	Regions  int    `json:"regions"`
	Loops    int    `json:"loops"`
	Vertices int    `json:"vertices"`
	SVG      string `json:"svg"`
	MimeType string `json:"mime_type"`
}

func (s *Server) handleImageVectorize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageVectorizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	prepared, err := s.prepare(a.prepareArgs)
	if err != nil {
		return nil, err
	}

	keep := s.cfg.Vectorize.KeepEveryPoint
	if a.KeepEveryPoint != nil {
		keep = *a.KeepEveryPoint
	}

	outline, err := vectorize.Trace(ctx, vectorize.GridFromImage(prepared), vectorize.Options{
		Opaque:         s.opaque(a.Opaque),
		KeepEveryPoint: keep,
		Workers:        s.cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	svg, err := vectorize.RenderSVG(outline.Width, outline.Height, outline.Colors)
	if err != nil {
		return nil, err
	}

	if s.cfg.Debug() {
		log.Printf("Vectorized %s: %dx%d, %d regions, %d loops, %d bytes of SVG",
			a.Path, outline.Width, outline.Height, outline.Regions, outline.Loops, len(svg))
	}

	return &VectorizeResult{
		Width:    outline.Width,
		Height:   outline.Height,
		Colors:   len(outline.Colors),
		Regions:  outline.Regions,
		Loops:    outline.Loops,
		Vertices: outline.Vertices,
		SVG:      svg,
		MimeType: svgMimeType,
	}, nil
}

type imageVectorizePixelsArgs struct {
	Path string `json:"path"`
	areaArgs
	Opaque *bool `json:"opaque"`
}

// PixelsSVGResult is the image_vectorize_pixels result.
type PixelsSVGResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	SVG      string `json:"svg"`
	MimeType string `json:"mime_type"`
}

func (s *Server) handleImageVectorizePixels(args json.RawMessage) (interface{}, error) {
	var a imageVectorizePixelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	prepared, err := s.prepare(prepareArgs{Path: a.Path, areaArgs: a.areaArgs})
	if err != nil {
		return nil, err
	}

	grid := vectorize.GridFromImage(prepared)
	svg, err := vectorize.RenderPixelsSVG(grid, s.opaque(a.Opaque))
	if err != nil {
		return nil, err
	}

	return &PixelsSVGResult{
		Width:    grid.Width,
		Height:   grid.Height,
		SVG:      svg,
		MimeType: svgMimeType,
	}, nil
}
