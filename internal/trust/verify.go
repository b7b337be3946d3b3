package trust

import (
	"context"
	"strings"
	"time"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// timeSensitiveKeywords triggers temporal validation for an otherwise
// VERIFIED claim (spec.md §4.6 step 3).
var timeSensitiveKeywords = []string{
	"current", "currently", "now", "today", "director", "ceo", "president",
	"this year", "2024", "2025",
}

func matchesTimeSensitiveKeyword(claimText string) bool {
	lower := strings.ToLower(claimText)
	for _, kw := range timeSensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SourceFinder resolves an authoritative source and URL for a claim,
// satisfied by internal/sources.Registry.
type SourceFinder interface {
	Empty() bool
	FindByKeyword(claimText string) (*models.AuthoritativeSource, int)
	FindByLLM(ctx context.Context, gw llmgw.Gateway, claimText string) (*models.AuthoritativeSource, float64, string)
	ResolveURL(ctx context.Context, gw llmgw.Gateway, src models.AuthoritativeSource, claimText string) (string, bool)
}

// ContentFetcher retrieves a URL's content and answers a question from it,
// satisfied by internal/fetch.Router.
type ContentFetcher interface {
	FetchForSource(ctx context.Context, src models.AuthoritativeSource, url, question string) (string, error)
}

type verifyResponse struct {
	Verdict        models.Verdict `json:"verdict"`
	Confidence     float64        `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
	Caveats        []string       `json:"caveats"`
	Contradictions []string       `json:"contradictions"`
}

type temporalComparisonResponse struct {
	StillCurrent *bool   `json:"still_current"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
	UpdateInfo   string  `json:"update_info"`
	SourceQuote  string  `json:"source_quote"`
}

// Verifier runs fact verification, including temporal validation, for
// individual claims.
type Verifier struct {
	gw      llmgw.Gateway
	sources SourceFinder
	fetcher ContentFetcher
	now     func() time.Time
}

// NewVerifier builds a Verifier. now defaults to time.Now when nil.
func NewVerifier(gw llmgw.Gateway, sources SourceFinder, fetcher ContentFetcher, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{gw: gw, sources: sources, fetcher: fetcher, now: now}
}

// VerifyClaims verifies claims in input order sequentially, preserving
// that order in the output (spec.md §4.6, §8 "Ordering guarantees").
func (v *Verifier) VerifyClaims(ctx context.Context, claims []models.Claim, skipTemporalValidation bool) []models.FactVerification {
	out := make([]models.FactVerification, 0, len(claims))
	for _, c := range claims {
		out = append(out, v.VerifyClaim(ctx, c, skipTemporalValidation))
	}
	return out
}

// VerifyClaim verifies a single claim (spec.md §4.6).
func (v *Verifier) VerifyClaim(ctx context.Context, claim models.Claim, skipTemporalValidation bool) models.FactVerification {
	if claim.Type == models.ClaimTypeSpeculation || claim.Type == models.ClaimTypeOpinion {
		return models.FactVerification{
			Claim:      claim,
			Verdict:    models.VerdictUnverifiable,
			Confidence: 1.0,
			Reasoning:  string(claim.Type) + " cannot be factually verified",
		}
	}

	raw, err := v.gw.Analyze(ctx, promptlib.FactVerificationSystem, claim.Text, 0.0, 500)
	if err != nil {
		return models.FactVerification{Claim: claim, Verdict: models.VerdictError, Confidence: 0}
	}
	resp, ok := llmgw.TryDecodeJSON[verifyResponse](raw)
	if !ok {
		return models.FactVerification{Claim: claim, Verdict: models.VerdictError, Confidence: 0}
	}
	if !resp.Verdict.IsValid() {
		// A malformed or missing verdict field is a parse failure by another
		// name: the response decoded as JSON but didn't carry a verdict from
		// the closed taxonomy (spec.md §4.6 step 4, §8).
		return models.FactVerification{Claim: claim, Verdict: models.VerdictError, Confidence: 0}
	}

	result := models.FactVerification{
		Claim:          claim,
		Verdict:        resp.Verdict,
		Confidence:     resp.Confidence,
		Reasoning:      resp.Reasoning,
		Caveats:        resp.Caveats,
		Contradictions: resp.Contradictions,
	}

	if !skipTemporalValidation && resp.Verdict == models.VerdictVerified && matchesTimeSensitiveKeyword(claim.Text) {
		v.applyTemporalValidation(ctx, &result)
	}

	return result
}

// applyTemporalValidation mutates result in place per §4.6.1.
func (v *Verifier) applyTemporalValidation(ctx context.Context, result *models.FactVerification) {
	today := v.now().UTC().Format("2006-01-02")

	if v.sources == nil || v.sources.Empty() {
		result.TemporalCheck = &models.TemporalCheck{
			Confidence:  0,
			Reasoning:   "no authoritative source available; cannot validate currency beyond model knowledge",
			CheckedDate: today,
			Method:      "knowledge_cutoff_limitation",
		}
		return
	}

	src, _ := v.sources.FindByKeyword(result.Claim.Text)
	if src == nil {
		matched, _, _ := v.sources.FindByLLM(ctx, v.gw, result.Claim.Text)
		src = matched
	}
	if src == nil {
		result.TemporalCheck = &models.TemporalCheck{
			Confidence:  0,
			Reasoning:   "no authoritative source matched this claim",
			CheckedDate: today,
			Method:      "knowledge_cutoff_limitation",
		}
		return
	}

	url, ok := v.sources.ResolveURL(ctx, v.gw, *src, result.Claim.Text)
	if !ok {
		result.TemporalCheck = &models.TemporalCheck{
			Confidence:  0,
			Reasoning:   "could not resolve a concrete URL for the matched source",
			CheckedDate: today,
			Method:      "webfetch_error",
		}
		return
	}

	fetched, err := v.fetcher.FetchForSource(ctx, *src, url, src.QueryPrompt)
	if err != nil {
		result.TemporalCheck = &models.TemporalCheck{
			Confidence:  0,
			Reasoning:   "fetch failed: " + err.Error(),
			CheckedDate: today,
			Source:      url,
			Method:      "webfetch_error",
		}
		return
	}

	userMsg := "Claim: " + result.Claim.Text + "\n\nFetched content: " + fetched
	raw, err := v.gw.Analyze(ctx, promptlib.TemporalComparisonSystem, userMsg, 0.0, 400)
	if err != nil {
		result.TemporalCheck = &models.TemporalCheck{
			Confidence:  0,
			Reasoning:   "comparison call failed: " + err.Error(),
			CheckedDate: today,
			Source:      url,
			Method:      "webfetch_error",
		}
		return
	}
	comp, ok := llmgw.TryDecodeJSON[temporalComparisonResponse](raw)
	if !ok {
		result.TemporalCheck = &models.TemporalCheck{
			Confidence:  0,
			Reasoning:   "could not parse temporal comparison response",
			CheckedDate: today,
			Source:      url,
			Method:      "webfetch_error",
		}
		return
	}

	result.TemporalCheck = &models.TemporalCheck{
		StillCurrent: comp.StillCurrent,
		Confidence:   comp.Confidence,
		Reasoning:    comp.Reasoning,
		CheckedDate:  today,
		Source:       url,
		UpdateInfo:   comp.UpdateInfo,
		Method:       "webfetch_comparison",
	}

	if comp.StillCurrent != nil && !*comp.StillCurrent {
		result.Verdict = models.VerdictOutdated
		result.Reasoning = result.Reasoning + " [UPDATE: " + comp.UpdateInfo + "]"
		result.Confidence = comp.Confidence
	}
}
