package fetch

import (
	"context"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// Renderer is the subset of BrowserFetcher the router needs, so tests can
// substitute a fake instead of launching Chromium.
type Renderer interface {
	RenderText(ctx context.Context, rawURL string) (string, error)
}

// Router picks between a plain HTTP fetch and a browser render depending on
// whether the matched source requires JS (spec.md §4.3 "requires_js").
type Router struct {
	fetcher  *Fetcher
	renderer Renderer
	gw       llmgw.Gateway
}

// NewRouter builds a Router. renderer may be nil; sources requiring JS then
// fall back to the plain fetcher rather than failing outright.
func NewRouter(fetcher *Fetcher, renderer Renderer, gw llmgw.Gateway) *Router {
	return &Router{fetcher: fetcher, renderer: renderer, gw: gw}
}

// FetchForSource retrieves url using the renderer when src requires JS,
// then asks the gateway to answer question from the retrieved content.
func (r *Router) FetchForSource(ctx context.Context, src models.AuthoritativeSource, url, question string) (string, error) {
	if !src.RequiresJS || r.renderer == nil {
		return r.fetcher.Fetch(ctx, url, question)
	}

	text, err := r.renderer.RenderText(ctx, url)
	if err != nil {
		return "", err
	}
	userMsg := "Question: " + question + "\n\nPage content:\n" + text
	return r.gw.Analyze(ctx, promptlib.WebFetchExtractionSystem, userMsg, 0.0, 600)
}
