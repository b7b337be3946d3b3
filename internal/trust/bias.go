package trust

import (
	"context"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// AnalyzeBias runs the single deterministic bias-analysis LLM call
// (spec.md §4.7). No verdict thresholds are applied here.
func AnalyzeBias(ctx context.Context, gw llmgw.Gateway, response string) models.BiasAnalysis {
	raw, err := gw.Analyze(ctx, promptlib.BiasAnalysisSystem, response, 0.0, 1200)
	if err != nil {
		return models.BiasAnalysis{Analyzed: false, Error: err.Error()}
	}
	parsed, ok := llmgw.TryDecodeJSON[models.BiasAnalysis](raw)
	if !ok {
		return models.BiasAnalysis{Analyzed: false, Error: "could not parse bias analysis response"}
	}
	parsed.Analyzed = true
	return parsed
}
