package trust

import (
	"context"

	"golang.org/x/sync/errgroup"

	"briefweaver/internal/apierrors"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

type timeSensitivityResponse struct {
	IsTimeSensitive bool   `json:"is_time_sensitive"`
	FactsNeeded     string `json:"facts_needed"`
	SourceType      string `json:"source_type"`
	Reasoning       string `json:"reasoning"`
}

// Pipeline orchestrates C5-C8 behind the public operations of C9
// (spec.md §4.9).
type Pipeline struct {
	gw       llmgw.Gateway
	sources  SourceFinder
	fetcher  ContentFetcher
	verifier *Verifier
}

// NewPipeline wires a trust pipeline from its collaborators.
func NewPipeline(gw llmgw.Gateway, sources SourceFinder, fetcher ContentFetcher, verifier *Verifier) *Pipeline {
	return &Pipeline{gw: gw, sources: sources, fetcher: fetcher, verifier: verifier}
}

// QueryResult is the outcome of querying the model under trust
// constraints, optionally enriched by fetch-first.
type QueryResult struct {
	Response      string
	UsedFetchFirst bool
}

// QueryWithTrustConstraints runs the query through the LLM with a
// trust-enhanced system prompt, first attempting fetch-first enrichment
// for time-sensitive queries (spec.md §4.9, §4.9.1).
func (p *Pipeline) QueryWithTrustConstraints(ctx context.Context, userQuery string, temperature float64) (QueryResult, error) {
	context_, usedFetchFirst := p.fetchFirst(ctx, userQuery)

	userMsg := userQuery
	if context_ != "" {
		userMsg = "Relevant current facts:\n" + context_ + "\n\nQuery: " + userQuery
	}

	resp, err := p.gw.Analyze(ctx, promptlib.TrustEnhancedSystem, userMsg, temperature, 1500)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Response: resp, UsedFetchFirst: usedFetchFirst}, nil
}

// StreamQueryWithTrustConstraints mirrors QueryWithTrustConstraints but
// streams the model's response incrementally through chunks, for the
// API's incremental-display surface (spec.md §4.9). It returns
// UsedFetchFirst once the stream completes. Callers must only invoke
// this when the underlying gateway satisfies llmgw.StreamingGateway;
// HasStreaming reports that.
func (p *Pipeline) StreamQueryWithTrustConstraints(ctx context.Context, userQuery string, temperature float64, chunks chan<- string) (bool, error) {
	sg, ok := p.gw.(llmgw.StreamingGateway)
	if !ok {
		return false, apierrors.ErrStreamingUnsupported
	}

	context_, usedFetchFirst := p.fetchFirst(ctx, userQuery)

	userMsg := userQuery
	if context_ != "" {
		userMsg = "Relevant current facts:\n" + context_ + "\n\nQuery: " + userQuery
	}

	if err := sg.AnalyzeStream(ctx, promptlib.TrustEnhancedSystem, userMsg, temperature, 1500, chunks); err != nil {
		return usedFetchFirst, err
	}
	return usedFetchFirst, nil
}

// HasStreaming reports whether this pipeline's gateway supports
// AnalyzeStream.
func (p *Pipeline) HasStreaming() bool {
	_, ok := p.gw.(llmgw.StreamingGateway)
	return ok
}

// fetchFirst implements §4.9.1: it asks whether the query is time
// sensitive and, if so, attempts a source match plus fetch. Failures
// degrade silently but usedFetchFirst remains true so callers can skip
// temporal validation downstream.
func (p *Pipeline) fetchFirst(ctx context.Context, userQuery string) (fetchedContext string, usedFetchFirst bool) {
	raw, err := p.gw.Analyze(ctx, promptlib.TimeSensitivitySystem, userQuery, 0.0, 300)
	if err != nil {
		return "", false
	}
	ts, ok := llmgw.TryDecodeJSON[timeSensitivityResponse](raw)
	if !ok || !ts.IsTimeSensitive {
		return "", false
	}

	usedFetchFirst = true
	if p.sources == nil || p.sources.Empty() {
		return "", usedFetchFirst
	}

	src, _ := p.sources.FindByKeyword(userQuery)
	if src == nil {
		matched, _, _ := p.sources.FindByLLM(ctx, p.gw, userQuery)
		src = matched
	}
	if src == nil {
		return "", usedFetchFirst
	}

	url, ok := p.sources.ResolveURL(ctx, p.gw, *src, userQuery)
	if !ok {
		return "", usedFetchFirst
	}

	question := src.QueryPrompt
	if question == "" {
		question = ts.FactsNeeded
	}
	content, err := p.fetcher.FetchForSource(ctx, *src, url, question)
	if err != nil {
		return "", usedFetchFirst
	}
	return content, usedFetchFirst
}

// AnalyzeResponse runs C5+C6, C7, and C8 concurrently, composing a
// TrustAnalysis. Each component's failure is isolated to its own
// analyzed=false marker; no component failure aborts the others
// (spec.md §4.9, §8 "Ordering guarantees").
func (p *Pipeline) AnalyzeResponse(ctx context.Context, response string, verifyFacts, checkBias, checkIntimacy, skipTemporalValidation bool) models.TrustAnalysis {
	var facts models.FactsAnalysis
	var bias models.BiasAnalysis
	var intimacy models.IntimacyAnalysis

	g, gctx := errgroup.WithContext(ctx)

	if verifyFacts {
		g.Go(func() error {
			claims := ExtractClaims(gctx, p.gw, response)
			verifications := p.verifier.VerifyClaims(gctx, claims, skipTemporalValidation)
			facts = models.FactsAnalysis{Analyzed: true, TotalClaims: len(claims), Verifications: verifications}
			return nil
		})
	} else {
		facts = models.FactsAnalysis{Analyzed: false}
	}

	if checkBias {
		g.Go(func() error {
			bias = AnalyzeBias(gctx, p.gw, response)
			return nil
		})
	} else {
		bias = models.BiasAnalysis{Analyzed: false}
	}

	if checkIntimacy {
		g.Go(func() error {
			intimacy = AnalyzeIntimacy(gctx, p.gw, response)
			return nil
		})
	} else {
		intimacy = models.IntimacyAnalysis{Analyzed: false}
	}

	_ = g.Wait() // component goroutines never return non-nil errors; failures are captured in each result's Analyzed flag

	actionability := RateActionability(facts, bias, intimacy)

	return models.TrustAnalysis{
		Analyzed:       true,
		ResponseLength: len(response),
		Facts:          facts,
		Bias:           bias,
		Intimacy:       intimacy,
		Actionability:  actionability,
	}
}

// FullPipelineResult is the composed output of run_full_pipeline
// (spec.md §4.9).
type FullPipelineResult struct {
	OriginalQuery   string               `json:"original_query"`
	Response        string               `json:"response"`
	TrustEnhanced   bool                 `json:"trust_enhanced"`
	UsedFetchFirst  bool                 `json:"used_fetch_first"`
	Analysis        *models.TrustAnalysis `json:"analysis,omitempty"`
}

// RunFullPipeline composes QueryWithTrustConstraints and AnalyzeResponse.
func (p *Pipeline) RunFullPipeline(ctx context.Context, userQuery string, temperature float64, verifyFacts, checkBias, checkIntimacy, skipTemporalValidation bool) (FullPipelineResult, error) {
	q, err := p.QueryWithTrustConstraints(ctx, userQuery, temperature)
	if err != nil {
		return FullPipelineResult{}, err
	}

	result := FullPipelineResult{
		OriginalQuery:  userQuery,
		Response:       q.Response,
		TrustEnhanced:  true,
		UsedFetchFirst: q.UsedFetchFirst,
	}

	analysis := p.AnalyzeResponse(ctx, q.Response, verifyFacts, checkBias, checkIntimacy, skipTemporalValidation || q.UsedFetchFirst)
	result.Analysis = &analysis
	return result, nil
}
