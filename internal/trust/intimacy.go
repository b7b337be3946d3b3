package trust

import (
	"context"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// AnalyzeIntimacy runs the single deterministic intimacy-detection LLM
// call (spec.md §4.8). An empty response yields overall_tone PROFESSIONAL
// and no issues (spec.md §8).
func AnalyzeIntimacy(ctx context.Context, gw llmgw.Gateway, response string) models.IntimacyAnalysis {
	if response == "" {
		return models.IntimacyAnalysis{Analyzed: true, OverallTone: models.ToneProfessional}
	}

	raw, err := gw.Analyze(ctx, promptlib.IntimacyDetectionSystem, response, 0.0, 800)
	if err != nil {
		return models.IntimacyAnalysis{Analyzed: false, Error: err.Error()}
	}
	parsed, ok := llmgw.TryDecodeJSON[models.IntimacyAnalysis](raw)
	if !ok {
		return models.IntimacyAnalysis{Analyzed: false, Error: "could not parse intimacy analysis response"}
	}
	parsed.Analyzed = true
	if parsed.OverallTone == "" {
		parsed.OverallTone = models.ToneProfessional
	}
	return parsed
}
