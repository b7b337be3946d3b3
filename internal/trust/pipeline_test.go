package trust

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefweaver/internal/apierrors"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// Scenario 1: Python history, no fetch-first.
func TestPipeline_PythonHistoryScenario(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.TimeSensitivitySystem, `{"is_time_sensitive": false, "facts_needed": "", "source_type": "", "reasoning": "historical fact"}`)
	rg.Enqueue(promptlib.TrustEnhancedSystem, "Guido van Rossum created Python in 1991. I think it's a wonderful language.")
	rg.Enqueue(promptlib.ClaimExtractionSystem, `{"claims": [{"text": "Guido van Rossum created Python", "type": "FACT", "confidence": 0.95, "reasoning": "x"}, {"text": "it's a wonderful language", "type": "OPINION", "confidence": 0.9, "reasoning": "x"}]}`)
	rg.Enqueue(promptlib.FactVerificationSystem, `{"verdict": "VERIFIED", "confidence": 0.9, "reasoning": "well documented"}`)
	rg.Enqueue(promptlib.BiasAnalysisSystem, `{"framing_issues": [], "assumptions": [], "omissions": [], "loaded_terms": []}`)
	rg.Enqueue(promptlib.IntimacyDetectionSystem, `{"issues": [], "overall_tone": "PROFESSIONAL", "summary": "neutral"}`)

	p := NewPipeline(rg, noSources{}, noFetcher{}, NewVerifier(rg, noSources{}, noFetcher{}, fixedNow))
	result, err := p.RunFullPipeline(context.Background(), "Who created Python?", 0.0, true, true, true, false)
	require.NoError(t, err)

	assert.False(t, result.UsedFetchFirst)
	require.NotNil(t, result.Analysis)
	assert.Equal(t, 1, result.Analysis.Facts.VerifiedCount())
	assert.Equal(t, 0, result.Analysis.Facts.ContradictedCount())
	assert.Empty(t, result.Analysis.Bias.FramingIssues)
	assert.Equal(t, models.ActionabilityYes, result.Analysis.Actionability.Rating)
}

// Scenario 2: outdated leadership fact promotes the verdict.
func TestPipeline_OutdatedLeadershipScenario(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.ClaimExtractionSystem, `{"claims": [{"text": "The CEO is Jane Doe", "type": "FACT", "confidence": 0.9, "reasoning": "x"}]}`)
	rg.Enqueue(promptlib.FactVerificationSystem, `{"verdict": "VERIFIED", "confidence": 0.9, "reasoning": "was true previously"}`)
	rg.Enqueue(promptlib.TemporalComparisonSystem, `{"still_current": false, "confidence": 0.9, "reasoning": "leadership changed", "update_info": "John Brown is now CEO"}`)
	rg.Enqueue(promptlib.BiasAnalysisSystem, `{"framing_issues": [], "assumptions": [], "omissions": [], "loaded_terms": []}`)
	rg.Enqueue(promptlib.IntimacyDetectionSystem, `{"issues": [], "overall_tone": "PROFESSIONAL", "summary": "neutral"}`)

	src := &models.AuthoritativeSource{Name: "Corporate leadership tracker", QueryPrompt: "Who is CEO?"}
	sources := fakeSources{src: src, url: "https://example.com/leadership"}
	fetcher := fakeFetcher{content: "John Brown is the current CEO."}
	verifier := NewVerifier(rg, sources, fetcher, fixedNow)
	p := NewPipeline(rg, sources, fetcher, verifier)

	analysis := p.AnalyzeResponse(context.Background(), "The CEO is Jane Doe", true, true, true, false)
	require.Len(t, analysis.Facts.Verifications, 1)
	assert.Equal(t, models.VerdictOutdated, analysis.Facts.Verifications[0].Verdict)
	assert.NotEmpty(t, analysis.Facts.Verifications[0].TemporalCheck.UpdateInfo)
}

// Scenario 3: contradicted fact is never actionable.
func TestPipeline_ContradictedFactScenario(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.ClaimExtractionSystem, `{"claims": [{"text": "Python was created in 2010", "type": "FACT", "confidence": 0.9, "reasoning": "x"}]}`)
	rg.Enqueue(promptlib.FactVerificationSystem, `{"verdict": "CONTRADICTED", "confidence": 0.95, "reasoning": "Python was created in 1991"}`)
	rg.Enqueue(promptlib.BiasAnalysisSystem, `{"framing_issues": [], "assumptions": [], "omissions": [], "loaded_terms": []}`)
	rg.Enqueue(promptlib.IntimacyDetectionSystem, `{"issues": [], "overall_tone": "PROFESSIONAL", "summary": "neutral"}`)

	p := NewPipeline(rg, noSources{}, noFetcher{}, NewVerifier(rg, noSources{}, noFetcher{}, fixedNow))
	analysis := p.AnalyzeResponse(context.Background(), "Python was created in 2010", true, true, true, true)
	assert.Equal(t, models.ActionabilityNo, analysis.Actionability.Rating)
}

// Scenario 4: intimacy failure overrides facts regardless of fact score.
func TestPipeline_IntimacyFailureScenario(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.ClaimExtractionSystem, `{"claims": []}`)
	rg.Enqueue(promptlib.BiasAnalysisSystem, `{"framing_issues": [], "assumptions": [], "omissions": [], "loaded_terms": []}`)
	rg.Enqueue(promptlib.IntimacyDetectionSystem, `{"issues": [{"category": "EMOTION", "text": "I'm excited to help you!", "explanation": "x", "severity": "HIGH", "professional_alternative": "I can help."}], "overall_tone": "INAPPROPRIATE", "summary": "x"}`)

	p := NewPipeline(rg, noSources{}, noFetcher{}, NewVerifier(rg, noSources{}, noFetcher{}, fixedNow))
	analysis := p.AnalyzeResponse(context.Background(), "I'm excited to help you!", true, true, true, true)
	assert.Equal(t, models.ActionabilityNo, analysis.Actionability.Rating)
	assert.Equal(t, "Inappropriate tone detected", analysis.Actionability.Reason)
}

func TestPipeline_FetchFirst_TimeSensitiveEnrichesQuery(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.TimeSensitivitySystem, `{"is_time_sensitive": true, "facts_needed": "current CEO", "source_type": "corporate", "reasoning": "asks about current role"}`)
	rg.Enqueue(promptlib.TrustEnhancedSystem, "The current CEO is John Brown.")

	src := &models.AuthoritativeSource{Name: "Corporate leadership tracker", QueryPrompt: "Who is CEO?"}
	sources := fakeSources{src: src, url: "https://example.com/leadership"}
	fetcher := fakeFetcher{content: "John Brown is CEO."}
	p := NewPipeline(rg, sources, fetcher, NewVerifier(rg, sources, fetcher, fixedNow))

	result, err := p.QueryWithTrustConstraints(context.Background(), "Who is the current CEO?", 0.0)
	require.NoError(t, err)
	assert.True(t, result.UsedFetchFirst)
	assert.Equal(t, "The current CEO is John Brown.", result.Response)
}

func TestPipeline_StreamQueryWithTrustConstraints_UnsupportedGatewayErrors(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	p := NewPipeline(rg, noSources{}, noFetcher{}, NewVerifier(rg, noSources{}, noFetcher{}, fixedNow))

	assert.False(t, p.HasStreaming())
	chunks := make(chan string)
	_, err := p.StreamQueryWithTrustConstraints(context.Background(), "Who created Python?", 0.0, chunks)
	assert.ErrorIs(t, err, apierrors.ErrStreamingUnsupported)
}

func TestPipeline_FetchFirst_FetchFailureStillRecordsUsedFetchFirst(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.TimeSensitivitySystem, `{"is_time_sensitive": true, "facts_needed": "current CEO", "source_type": "corporate", "reasoning": "x"}`)
	rg.Enqueue(promptlib.TrustEnhancedSystem, "I don't have that information.")

	src := &models.AuthoritativeSource{Name: "Corporate leadership tracker"}
	sources := fakeSources{src: src, url: "https://example.com/leadership"}
	fetcher := fakeFetcher{err: assertNeverCalled{}}
	p := NewPipeline(rg, sources, fetcher, NewVerifier(rg, sources, fetcher, fixedNow))

	result, err := p.QueryWithTrustConstraints(context.Background(), "Who is the current CEO?", 0.0)
	require.NoError(t, err)
	assert.True(t, result.UsedFetchFirst)
}
