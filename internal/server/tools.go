package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// namedAreas lists the values accepted by the "area" argument.
var namedAreas = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional rectangle to work on. (x1,y1) inclusive, (x2,y2) exclusive. Coordinates in the result are relative to x1,y1.",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

func areaProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        namedAreas,
		"description": "Optional named part of the image, instead of region",
	}
}

func thresholdProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     255,
		"description": "Optional luminance level (0-255). Pixels at or above it become white, the rest black, judged on color regardless of alpha. Pixels with alpha below 128 become fully transparent, the rest fully opaque. Use on anti-aliased or noisy images to avoid one region per shade.",
	}
}

func opaqueProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Skip fully transparent pixels so they produce no shapes. Defaults to the server configuration (normally false).",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Analysis
		{
			Name:        "image_palette",
			Description: "List the exact colors of an image, most frequent first. Every distinct color becomes at least one shape when vectorized, so check this before tracing photos or anti-aliased art.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 16, 0 for all",
						"default":     16,
					},
					"region": regionProperty(),
					"area":   areaProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_regions",
			Description: "Split an image into connected same-color regions and report how many each color has, with the pixel count and bounding box of each region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"opaque":    opaqueProperty(),
					"region":    regionProperty(),
					"area":      areaProperty(),
					"threshold": thresholdProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_preview",
			Description: "Render the image exactly as it would be traced (after region/area and threshold) as a base64-encoded PNG, magnified without smoothing so single pixels stay visible, optionally with a pixel grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"region":    regionProperty(),
					"area":      areaProperty(),
					"threshold": thresholdProperty(),
					"scale": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     32,
						"description": "Integer magnification. Default 1",
						"default":     1,
					},
					"grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw a line on every pixel boundary, every tenth line solid. Needs scale 3 or more",
						"default":     false,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid color as #RRGGBB or #RRGGBBAA. Default #80808080",
						"default":     "#80808080",
					},
				},
				"required": []string{"path"},
			},
		},

		// Vectorization
		{
			Name:        "image_vectorize",
			Description: "Trace every same-color region of an image into closed polygon outlines and return them as an SVG document with one filled path per color. Holes are separate subpaths wound the other way.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"opaque": opaqueProperty(),
					"keep_every_point": map[string]interface{}{
						"type":        "boolean",
						"description": "Keep a vertex at every pixel corner instead of merging straight runs. Defaults to the server configuration (normally false).",
					},
					"region":    regionProperty(),
					"area":      areaProperty(),
					"threshold": thresholdProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_vectorize_pixels",
			Description: "Export an image as an SVG with one 1x1 rectangle per pixel. Exact but large; use image_vectorize for compact output.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"opaque": opaqueProperty(),
					"region": regionProperty(),
					"area":   areaProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
