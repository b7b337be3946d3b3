// Command briefmcp runs the trust-analysis and synthesis pipeline as an
// MCP server over stdio, for embedding in editor/agent contexts
// (SPEC_FULL.md §1 [EXPANSION]), adapted from the teacher-pack
// quanticsoul4772-unified-thinking example's stdio entry point.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"briefweaver/config"
	"briefweaver/internal/mcpserver"
	"briefweaver/internal/wiring"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	recorded := flag.String("recorded", "", "path to a RecordedGateway fixture file, for offline runs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pl, err := wiring.Build(cfg, *recorded)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}
	defer pl.Close()

	srv := mcpserver.New("briefweaver", "1.0.0", &mcpserver.Server{
		Gateway:      pl.Gateway,
		Sources:      pl.Sources,
		Fetcher:      pl.Fetcher,
		Articles:     pl.Articles,
		Profiles:     pl.Store,
		Perspectives: pl.Store,
		Modules:      pl.Store,
		Flags:        cfg.Flags,
	})

	log.Println("briefmcp starting on stdio transport")
	if err := srv.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
