// Package api exposes the trust-analysis and synthesis operations as a
// thin JSON HTTP surface, adapted from the teacher's gin-based router
// (internal/api/routes). Per spec.md §1's non-goal of "end-to-end
// web-application concerns", this layer stays routing-and-marshalling
// only: every handler composes the same internal/curator, internal/trust,
// and internal/synthesis types the CLI uses, with no business logic of
// its own.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"briefweaver/internal/anomaly"
	"briefweaver/internal/apierrors"
	"briefweaver/internal/budget"
	"briefweaver/internal/collab"
	"briefweaver/internal/curator"
	"briefweaver/internal/fetch"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/perception"
	"briefweaver/internal/report"
	"briefweaver/internal/sources"
	"briefweaver/internal/synthesis"
	"briefweaver/internal/trust"
)

// Server bundles the collaborators and pipeline components a route
// handler needs. It owns no mutable state beyond what its fields already
// are (a read-only registry, a gateway, collaborator interfaces), matching
// spec.md §5 "no locking is required for the specified core".
type Server struct {
	Gateway      llmgw.Gateway
	Sources      *sources.Registry
	Fetcher      *fetch.Router
	Articles     collab.ArticleSource
	Profiles     collab.ProfileSource
	Perspectives collab.PerspectiveCatalogue
	Modules      collab.ContextModuleSource
	Flags        models.PipelineFlags
	Reports      *report.Writer
}

// Router builds the gin engine exposing the pipeline's JSON surface.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", s.handleHealth)
	r.POST("/synthesize", s.handleSynthesize)
	r.POST("/trust/analyze", s.handleTrustAnalyze)
	r.POST("/trust/query", s.handleTrustQuery)
	r.POST("/trust/query/stream", s.handleTrustQueryStream)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type synthesizeRequest struct {
	Hours       int `json:"hours"`
	MaxArticles int `json:"max_articles"`
}

// handleSynthesize runs C10-C15 (curation through reflection) and returns
// the resulting SynthesisDocument.
func (s *Server) handleSynthesize(c *gin.Context) {
	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Hours <= 0 {
		req.Hours = 24
	}
	if req.MaxArticles <= 0 {
		req.MaxArticles = 30
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	cur := curator.New(
		s.Articles, s.Profiles, s.Perspectives, s.Modules,
		perception.New(s.Gateway), anomaly.New(), budget.New(), s.Flags,
	)

	curated, err := cur.CurateForNarrativeSynthesis(ctx, req.Hours, req.MaxArticles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	synthesizer := synthesis.New(s.Gateway)
	doc, err := synthesizer.Synthesize(ctx, curated, c.Request.Header.Get("X-Request-Id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if s.Flags.EnableReflection {
		reflector := synthesis.NewReflector(s.Gateway)
		if _, refined, err := reflector.Reflect(ctx, doc); err == nil {
			doc = refined
		}
	}

	if s.Reports != nil {
		_, _ = s.Reports.WriteSynthesis(doc)
	}

	c.JSON(http.StatusOK, doc)
}

type trustAnalyzeRequest struct {
	Response               string `json:"response" binding:"required"`
	VerifyFacts            *bool  `json:"verify_facts"`
	CheckBias              *bool  `json:"check_bias"`
	CheckIntimacy          *bool  `json:"check_intimacy"`
	SkipTemporalValidation bool   `json:"skip_temporal_validation"`
}

func boolOrDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// handleTrustAnalyze runs C5-C9 over an already-produced response (e.g. a
// synthesis bottom line or an externally generated chat reply).
func (s *Server) handleTrustAnalyze(c *gin.Context) {
	var req trustAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	verifier := trust.NewVerifier(s.Gateway, s.Sources, s.Fetcher, time.Now)
	pipeline := trust.NewPipeline(s.Gateway, s.Sources, s.Fetcher, verifier)

	analysis := pipeline.AnalyzeResponse(
		ctx, req.Response,
		boolOrDefault(req.VerifyFacts, true),
		boolOrDefault(req.CheckBias, true),
		boolOrDefault(req.CheckIntimacy, true),
		req.SkipTemporalValidation,
	)

	if s.Reports != nil {
		_, _ = s.Reports.WriteTrustAnalysis(analysis)
	}

	c.JSON(http.StatusOK, analysis)
}

type trustQueryRequest struct {
	Query       string  `json:"query" binding:"required"`
	Temperature float64 `json:"temperature"`
}

// handleTrustQuery runs the full query_with_trust_constraints +
// analyze_response composition (spec.md §4.9 run_full_pipeline).
func (s *Server) handleTrustQuery(c *gin.Context) {
	var req trustQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Temperature == 0 {
		req.Temperature = 1.0
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	verifier := trust.NewVerifier(s.Gateway, s.Sources, s.Fetcher, time.Now)
	pipeline := trust.NewPipeline(s.Gateway, s.Sources, s.Fetcher, verifier)

	result, err := pipeline.RunFullPipeline(ctx, req.Query, req.Temperature, true, true, true, false)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if s.Reports != nil && result.Analysis != nil {
		_, _ = s.Reports.WriteTrustAnalysis(result.Analysis)
	}

	c.JSON(http.StatusOK, result)
}

// handleTrustQueryStream runs query_with_trust_constraints with the
// response streamed incrementally as Server-Sent Events, for clients that
// want partial output as it generates instead of waiting for the full
// response (spec.md §4.9). It returns 501 when the configured gateway
// doesn't implement llmgw.StreamingGateway.
func (s *Server) handleTrustQueryStream(c *gin.Context) {
	var req trustQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Temperature == 0 {
		req.Temperature = 1.0
	}

	verifier := trust.NewVerifier(s.Gateway, s.Sources, s.Fetcher, time.Now)
	pipeline := trust.NewPipeline(s.Gateway, s.Sources, s.Fetcher, verifier)

	if !pipeline.HasStreaming() {
		c.JSON(http.StatusNotImplemented, gin.H{"error": apierrors.ErrStreamingUnsupported.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	chunks := make(chan string)
	streamErr := make(chan error, 1)
	go func() {
		_, err := pipeline.StreamQueryWithTrustConstraints(ctx, req.Query, req.Temperature, chunks)
		close(chunks)
		streamErr <- err
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-chunks
		if !ok {
			if err := <-streamErr; err != nil && !errors.Is(err, context.Canceled) {
				c.SSEvent("error", err.Error())
				return false
			}
			c.SSEvent("done", "")
			return false
		}
		c.SSEvent("message", chunk)
		return true
	})
}
