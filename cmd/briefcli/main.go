// Command briefcli wires the whole pipeline end-to-end against the
// file-backed collaborator stubs in internal/collab/filemem, so the
// system is runnable standalone for review and local testing
// (SPEC_FULL.md §1 [EXPANSION]).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"briefweaver/config"
	"briefweaver/internal/anomaly"
	"briefweaver/internal/budget"
	"briefweaver/internal/curator"
	"briefweaver/internal/perception"
	"briefweaver/internal/synthesis"
	"briefweaver/internal/trust"
	"briefweaver/internal/wiring"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		mode       = flag.String("mode", "synthesize", "synthesize | trust")
		hours      = flag.Int("hours", 24, "recency window in hours for synthesis")
		maxArts    = flag.Int("max-articles", 30, "max articles to curate")
		query      = flag.String("query", "", "user query for trust mode")
		recorded   = flag.String("recorded", "", "path to a RecordedGateway fixture file, for offline runs")
	)
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

	ctx := context.Background()

	switch *mode {
	case "synthesize":
		if err := runSynthesis(ctx, cfg, pl, *hours, *maxArts); err != nil {
			log.Fatalf("synthesis run failed: %v", err)
		}
	case "trust":
		if *query == "" {
			log.Fatal("-query is required in trust mode")
		}
		if err := runTrust(ctx, pl, *query); err != nil {
			log.Fatalf("trust run failed: %v", err)
		}
	default:
		log.Fatalf("unknown -mode %q (want synthesize or trust)", *mode)
	}
}

func runSynthesis(ctx context.Context, cfg *config.Config, pl *wiring.Pipeline, hours, maxArticles int) error {
	cur := curator.New(
		pl.Articles, pl.Store, pl.Store, pl.Store,
		perception.New(pl.Gateway),
		anomaly.New(),
		budget.New(),
		cfg.Flags,
	)

	curated, err := cur.CurateForNarrativeSynthesis(ctx, hours, maxArticles)
	if err != nil {
		return fmt.Errorf("curate context: %w", err)
	}

	synthesizer := synthesis.New(pl.Gateway)
	doc, err := synthesizer.Synthesize(ctx, curated, newSynthesisID())
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	if cfg.Flags.EnableReflection {
		reflector := synthesis.NewReflector(pl.Gateway)
		_, refined, err := reflector.Reflect(ctx, doc)
		if err != nil {
			log.Printf("reflection failed, keeping original synthesis: %v", err)
		} else {
			doc = refined
		}
	}

	path, err := pl.Reports.WriteSynthesis(doc)
	if err != nil {
		return fmt.Errorf("write synthesis artifact: %w", err)
	}

	log.Printf("synthesis written to %s", path)
	fmt.Println(doc.BottomLine.Summary)

	if cfg.Flags.EnableTrustVerification {
		return analyzeAndReport(ctx, pl, doc.BottomLine.Summary)
	}
	return nil
}

func runTrust(ctx context.Context, pl *wiring.Pipeline, query string) error {
	verifier := trust.NewVerifier(pl.Gateway, pl.Sources, pl.Fetcher, time.Now)
	pipeline := trust.NewPipeline(pl.Gateway, pl.Sources, pl.Fetcher, verifier)

	result, err := pipeline.RunFullPipeline(ctx, query, 1.0, true, true, true, false)
	if err != nil {
		return err
	}

	fmt.Println(result.Response)
	if result.Analysis != nil {
		path, err := pl.Reports.WriteTrustAnalysis(result.Analysis)
		if err != nil {
			return fmt.Errorf("write trust artifact: %w", err)
		}
		log.Printf("trust analysis written to %s (actionability=%s)", path, result.Analysis.Actionability.Rating)
	}
	return nil
}

// analyzeAndReport runs the trust pipeline over an already-produced
// AI-authored text (here, the synthesis bottom line) per spec.md §1:
// "Any AI-authored text ... may be passed to C9 for independent trust
// analysis."
func analyzeAndReport(ctx context.Context, pl *wiring.Pipeline, response string) error {
	verifier := trust.NewVerifier(pl.Gateway, pl.Sources, pl.Fetcher, time.Now)
	pipeline := trust.NewPipeline(pl.Gateway, pl.Sources, pl.Fetcher, verifier)

	analysis := pipeline.AnalyzeResponse(ctx, response, true, true, true, false)
	path, err := pl.Reports.WriteTrustAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("write trust artifact: %w", err)
	}
	log.Printf("trust analysis written to %s (actionability=%s)", path, analysis.Actionability.Rating)
	return nil
}

// newSynthesisID produces an opaque per-run identifier (spec.md §3:
// "All identifiers are opaque strings"). Randomness is avoided inside
// library code per spec.md §3 ("otherwise immutable"); identifiers are
// minted only by the outer-layer entry points, and this is the CLI's.
func newSynthesisID() string {
	return uuid.NewString()
}
