// Package server implements the MCP (Model Context Protocol) server for the
// image vectorization tools.
//
// This package provides a JSON-RPC 2.0 server that exposes raster-to-SVG
// tracing through the MCP protocol, so MCP-compatible clients can turn
// pixel art, icons, glyph bitmaps and other flat-color images into vector
// outlines.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Analysis:
//   - image_palette: Exact colors by frequency
//   - image_regions: Connected same-color regions per color
//   - image_preview: PNG of the image as the tracer will see it, magnified
//     and optionally overlaid with a pixel grid
//
// Vectorization:
//   - image_vectorize: Outline SVG, one path per color
//   - image_vectorize_pixels: SVG with one rectangle per pixel
//
// Every tool except image_load and image_dimensions accepts either a
// "region" rectangle or a named "area" (top-left, center, ...). The tracing
// tools also accept "threshold" to binarize the image first.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// Images larger than the configured pixel limit are refused before decoding.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.NewWithConfig(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
