// Command briefapi serves the trust-analysis and synthesis pipeline over
// HTTP (internal/api), using the same file-backed collaborators as
// cmd/briefcli (SPEC_FULL.md §1 [EXPANSION]).
package main

import (
	"flag"
	"log"

	"briefweaver/config"
	"briefweaver/internal/api"
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

	srv := &api.Server{
		Gateway:      pl.Gateway,
		Sources:      pl.Sources,
		Fetcher:      pl.Fetcher,
		Articles:     pl.Articles,
		Profiles:     pl.Store,
		Perspectives: pl.Store,
		Modules:      pl.Store,
		Flags:        cfg.Flags,
		Reports:      pl.Reports,
	}

	log.Printf("briefapi listening on %s", cfg.Server.Address)
	if err := srv.Router().Run(cfg.Server.Address); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
