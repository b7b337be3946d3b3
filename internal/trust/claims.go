// Package trust implements the trust verification pipeline (spec.md §3,
// §4.5-§4.9): claim extraction, fact verification with fetch-first
// temporal validation, bias analysis, intimacy detection, and a
// deterministic actionability rating composed from the three.
package trust

import (
	"context"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

type claimExtractionResponse struct {
	Claims []models.Claim `json:"claims"`
}

// ExtractClaims decomposes response into discrete, typed claims. A parse
// failure yields the empty list rather than an error, since extraction
// degrades to "no claims found" instead of aborting the pipeline
// (spec.md §4.5).
func ExtractClaims(ctx context.Context, gw llmgw.Gateway, response string) []models.Claim {
	raw, err := gw.Analyze(ctx, promptlib.ClaimExtractionSystem, response, 0.0, 1500)
	if err != nil {
		return nil
	}
	parsed, ok := llmgw.TryDecodeJSON[claimExtractionResponse](raw)
	if !ok {
		return nil
	}
	return parsed.Claims
}
