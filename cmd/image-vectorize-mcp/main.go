package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/image-vectorize-mcp/internal/config"
	"github.com/ironsheep/image-vectorize-mcp/internal/server"
	"github.com/ironsheep/image-vectorize-mcp/internal/vectorize"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-vectorize-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-vectorize-mcp - MCP server that traces raster images into SVG outlines")
			fmt.Println()
			fmt.Println("Usage: image-vectorize-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_MCP_CONFIG=<file>      TOML configuration file")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  IMAGE_MCP_MAX_PIXELS=<n>     Largest image accepted (0 = no limit)")
			fmt.Println("  IMAGE_MCP_WORKERS=<n>        Regions traced in parallel (0 = one per CPU)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Image Vectorize MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: max_pixels=%d workers=%d opaque=%v keep_every_point=%v",
			cfg.MaxPixels, cfg.Workers, cfg.Vectorize.Opaque, cfg.Vectorize.KeepEveryPoint)
		vectorize.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewWithConfig(cfg)
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
