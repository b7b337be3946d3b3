package trust

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

func TestAnalyzeIntimacy_EmptyResponseIsProfessional(t *testing.T) {
	result := AnalyzeIntimacy(context.Background(), llmgw.NewRecordedGateway(), "")
	assert.True(t, result.Analyzed)
	assert.Equal(t, models.ToneProfessional, result.OverallTone)
	assert.Empty(t, result.Issues)
}

func TestAnalyzeIntimacy_HighSeverityIssue(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.IntimacyDetectionSystem, `{"issues": [{"category": "EMOTION", "text": "I'm excited to help you!", "explanation": "overly enthusiastic", "severity": "HIGH", "professional_alternative": "I can help with that."}], "overall_tone": "INAPPROPRIATE", "summary": "excessive enthusiasm"}`)

	result := AnalyzeIntimacy(context.Background(), rg, "I'm excited to help you!")
	assert.Equal(t, 1, result.HighSeverityCount())
	assert.Equal(t, models.ToneInappropriate, result.OverallTone)
}
