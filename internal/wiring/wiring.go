// Package wiring builds the shared pipeline collaborators (gateway,
// source registry, fetch router, filemem-backed article/profile store)
// from a config.Config, so the CLI, HTTP API, and MCP server entry
// points construct an identical pipeline instead of each re-deriving it.
package wiring

import (
	"fmt"

	"briefweaver/config"
	"briefweaver/internal/collab"
	"briefweaver/internal/collab/filemem"
	"briefweaver/internal/collab/neo4jmem"
	"briefweaver/internal/fetch"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/report"
	"briefweaver/internal/sources"
)

// Pipeline is the set of collaborators every entry point assembles into
// its own curator/trust-pipeline instances per request or run.
type Pipeline struct {
	Gateway  llmgw.Gateway
	Sources  *sources.Registry
	Fetcher  *fetch.Router
	Store    *filemem.Store       // backs ProfileSource/PerspectiveCatalogue/ContextModuleSource always
	Articles collab.ArticleSource // defaults to Store; swapped for neo4jmem.Store per cfg.Articles.Backend
	Reports  *report.Writer
	browser  *fetch.BrowserFetcher // non-nil only when Chromium launched; Close releases it
	neo4j    *neo4jmem.Store       // non-nil only when the neo4j backend was selected; Close releases it
}

// Close releases any collaborator that owns an external process: the
// headless-Chromium browser fetcher and/or the Neo4j driver, whichever
// were constructed.
func (p *Pipeline) Close() error {
	var err error
	if p.browser != nil {
		err = p.browser.Close()
	}
	if p.neo4j != nil {
		if nerr := p.neo4j.Close(); nerr != nil && err == nil {
			err = nerr
		}
	}
	return err
}

// Build wires a Pipeline from cfg. recordedPath, when non-empty, swaps the
// live HTTP gateway for a fixture-backed RecordedGateway (spec.md §9
// "LLM call boundary").
func Build(cfg *config.Config, recordedPath string) (*Pipeline, error) {
	gw, err := buildGateway(cfg, recordedPath)
	if err != nil {
		return nil, err
	}

	reg, err := sources.Load(cfg.SourcesPath)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(gw, cfg.Fetch.UserAgent)

	// A source flagged RequiresJS needs a rendered DOM; the browser fetcher
	// backs that path when Chromium is available on the host. Its absence
	// (no browsers installed, sandboxed CI) is not fatal: Router falls back
	// to the plain fetcher for every source, JS-requiring or not.
	var renderer *fetch.BrowserFetcher
	if b, berr := fetch.NewBrowserFetcher(); berr == nil {
		renderer = b
	}

	var router *fetch.Router
	if renderer != nil {
		router = fetch.NewRouter(fetcher, renderer, gw)
	} else {
		router = fetch.NewRouter(fetcher, nil, gw)
	}

	store := filemem.New(cfg.DataDir)

	p := &Pipeline{
		Gateway:  gw,
		Sources:  reg,
		Fetcher:  router,
		Store:    store,
		Articles: store,
		Reports:  report.New(cfg.ReportsDir),
		browser:  renderer,
	}

	// cfg.Articles.Backend selects the ArticleSource collaborator (spec.md
	// §6.1); ProfileSource/PerspectiveCatalogue/ContextModuleSource stay on
	// the filemem store regardless, since only article storage has a
	// second grounded backend in this pack.
	switch cfg.Articles.Backend {
	case "", "filemem":
	case "neo4j":
		n, err := neo4jmem.Open(cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password)
		if err != nil {
			return nil, fmt.Errorf("connect neo4j article source: %w", err)
		}
		p.Articles = n
		p.neo4j = n
	default:
		return nil, fmt.Errorf("unknown articles backend %q", cfg.Articles.Backend)
	}

	return p, nil
}

func buildGateway(cfg *config.Config, recordedPath string) (llmgw.Gateway, error) {
	if recordedPath != "" {
		return llmgw.LoadRecordedGateway(recordedPath)
	}
	return llmgw.NewHTTPGateway(cfg.LLM.URL, cfg.LLM.Model, cfg.LLM.Timeout), nil
}
