// Package mcpserver exposes the trust-analysis and synthesis operations
// as MCP (Model Context Protocol) tools, adapted from the
// quanticsoul4772-unified-thinking teacher-pack example's use of
// github.com/modelcontextprotocol/go-sdk/mcp (mcp.NewServer +
// mcp.AddTool with typed request/response structs). Like internal/api,
// this is a thin outer surface: every handler composes the same
// internal/curator, internal/trust, and internal/synthesis types the CLI
// and HTTP API use.
package mcpserver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"briefweaver/internal/anomaly"
	"briefweaver/internal/budget"
	"briefweaver/internal/collab"
	"briefweaver/internal/curator"
	"briefweaver/internal/fetch"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/perception"
	"briefweaver/internal/sources"
	"briefweaver/internal/synthesis"
	"briefweaver/internal/trust"
)

// Server bundles the collaborators and pipeline components the MCP tool
// handlers need, mirroring internal/api.Server.
type Server struct {
	Gateway      llmgw.Gateway
	Sources      *sources.Registry
	Fetcher      *fetch.Router
	Articles     collab.ArticleSource
	Profiles     collab.ProfileSource
	Perspectives collab.PerspectiveCatalogue
	Modules      collab.ContextModuleSource
	Flags        models.PipelineFlags
}

// New builds the MCP server with every tool registered and ready to run
// over a transport (stdio in cmd/briefmcp, per the teacher's pattern).
func New(name, version string, s *Server) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "analyze_trust",
		Description: "Runs the trust verification pipeline (claim extraction, fact verification, bias analysis, intimacy detection) over an AI-authored response and returns a TrustAnalysis with an actionability rating.",
	}, s.handleAnalyzeTrust)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "query_with_trust",
		Description: "Answers a user query under trust-enhanced constraints (optionally fetching current facts first for time-sensitive queries) and returns the full trust pipeline result.",
	}, s.handleQueryWithTrust)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "synthesize_brief",
		Description: "Curates recent articles under a token budget, runs perception and anomaly analysis, and synthesizes a structured intelligence brief (trends, priority events, predictions) with an optional reflection/refinement pass.",
	}, s.handleSynthesizeBrief)

	return srv
}

// AnalyzeTrustRequest is the analyze_trust tool's input.
type AnalyzeTrustRequest struct {
	Response               string `json:"response"`
	VerifyFacts            bool   `json:"verify_facts"`
	CheckBias              bool   `json:"check_bias"`
	CheckIntimacy          bool   `json:"check_intimacy"`
	SkipTemporalValidation bool   `json:"skip_temporal_validation"`
}

func (s *Server) handleAnalyzeTrust(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeTrustRequest) (*mcp.CallToolResult, *models.TrustAnalysis, error) {
	verifier := trust.NewVerifier(s.Gateway, s.Sources, s.Fetcher, time.Now)
	pipeline := trust.NewPipeline(s.Gateway, s.Sources, s.Fetcher, verifier)

	analysis := pipeline.AnalyzeResponse(ctx, input.Response, input.VerifyFacts, input.CheckBias, input.CheckIntimacy, input.SkipTemporalValidation)
	return nil, &analysis, nil
}

// QueryWithTrustRequest is the query_with_trust tool's input.
type QueryWithTrustRequest struct {
	Query       string  `json:"query"`
	Temperature float64 `json:"temperature"`
}

func (s *Server) handleQueryWithTrust(ctx context.Context, req *mcp.CallToolRequest, input QueryWithTrustRequest) (*mcp.CallToolResult, *trust.FullPipelineResult, error) {
	temperature := input.Temperature
	if temperature == 0 {
		temperature = 1.0
	}

	verifier := trust.NewVerifier(s.Gateway, s.Sources, s.Fetcher, time.Now)
	pipeline := trust.NewPipeline(s.Gateway, s.Sources, s.Fetcher, verifier)

	result, err := pipeline.RunFullPipeline(ctx, input.Query, temperature, true, true, true, false)
	if err != nil {
		return nil, nil, err
	}
	return nil, &result, nil
}

// SynthesizeBriefRequest is the synthesize_brief tool's input.
type SynthesizeBriefRequest struct {
	Hours       int `json:"hours"`
	MaxArticles int `json:"max_articles"`
}

func (s *Server) handleSynthesizeBrief(ctx context.Context, req *mcp.CallToolRequest, input SynthesizeBriefRequest) (*mcp.CallToolResult, *models.SynthesisDocument, error) {
	hours := input.Hours
	if hours <= 0 {
		hours = 24
	}
	maxArticles := input.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 30
	}

	cur := curator.New(
		s.Articles, s.Profiles, s.Perspectives, s.Modules,
		perception.New(s.Gateway), anomaly.New(), budget.New(), s.Flags,
	)

	curated, err := cur.CurateForNarrativeSynthesis(ctx, hours, maxArticles)
	if err != nil {
		return nil, nil, err
	}

	synthesizer := synthesis.New(s.Gateway)
	doc, err := synthesizer.Synthesize(ctx, curated, uuid.NewString())
	if err != nil {
		return nil, nil, err
	}

	if s.Flags.EnableReflection {
		reflector := synthesis.NewReflector(s.Gateway)
		if _, refined, err := reflector.Reflect(ctx, doc); err == nil {
			doc = refined
		}
	}

	return nil, doc, nil
}
