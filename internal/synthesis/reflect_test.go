package synthesis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

func baseDoc() *models.SynthesisDocument {
	return &models.SynthesisDocument{
		BottomLine: models.BottomLine{Summary: "Shallow take.", ImmediateActions: []string{"watch"}},
		Metadata:   models.SynthesisMetadata{SynthesisID: "syn-001"},
	}
}

func TestReflect_HighScoreSkipsRefinement(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.ReflectionSystem, `{"depth_score": 8.5, "dimension_scores": {"causal_depth": 8}, "shallow_areas": [], "missing_connections": [], "recommendations": []}`)

	r := NewReflector(rg)
	doc := baseDoc()
	result, final, err := r.Reflect(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 8.5, result.DepthScore)
	assert.Same(t, doc, final)
	assert.Equal(t, 1, rg.CallCount(promptlib.ReflectionSystem))
}

func TestReflect_LowScoreTriggersRefinementAndAcceptsMatchingSchema(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.ReflectionSystem, `{"depth_score": 4.0, "dimension_scores": {"causal_depth": 4}, "shallow_areas": ["causal_depth"], "missing_connections": [], "recommendations": ["dig deeper"]}`)
	rg.Enqueue(promptlib.ReflectionSystem, `{
      "bottom_line": {"summary": "Deeper take with causal chain.", "immediate_actions": ["watch", "escalate"]},
      "trends_and_patterns": {"local": [], "state_regional": [], "national": [], "global": [], "niche_field": []},
      "priority_events": [],
      "predictions_scenarios": {"local_governance": [], "education": [], "niche_field": [], "economic_conditions": [], "infrastructure": []},
      "metadata": {}
    }`)

	r := NewReflector(rg)
	doc := baseDoc()
	result, final, err := r.Reflect(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 4.0, result.DepthScore)
	assert.Equal(t, "Deeper take with causal chain.", final.BottomLine.Summary)
	assert.Equal(t, "syn-001", final.Metadata.SynthesisID)
	assert.Equal(t, 2, rg.CallCount(promptlib.ReflectionSystem))
}

func TestReflect_SchemaViolationKeepsOriginal(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.ReflectionSystem, `{"depth_score": 3.0, "dimension_scores": {"causal_depth": 3}, "shallow_areas": ["everything"], "missing_connections": [], "recommendations": []}`)
	rg.Enqueue(promptlib.ReflectionSystem, `{
      "bottom_line": {"summary": "Rewritten", "immediate_actions": []},
      "trends_and_patterns": {"local": [], "state_regional": [], "national": [], "global": [], "niche_field": []},
      "priority_events": [],
      "predictions_scenarios": {"local_governance": [], "education": [], "niche_field": [], "economic_conditions": [], "infrastructure": []},
      "metadata": {},
      "extra_top_level_key": true
    }`)

	r := NewReflector(rg)
	doc := baseDoc()
	result, final, err := r.Reflect(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.DepthScore)
	assert.Same(t, doc, final)
	assert.Equal(t, "Shallow take.", final.BottomLine.Summary)
}

func TestReflect_RefinementCallFailureKeepsOriginal(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.ReflectionSystem, `{"depth_score": 2.0, "dimension_scores": {"causal_depth": 2}, "shallow_areas": ["everything"], "missing_connections": [], "recommendations": []}`)
	// No refinement response is queued, so the second ReflectionSystem call
	// (the refinement) returns an error while the critique succeeds.

	r := NewReflector(rg)
	doc := baseDoc()
	result, final, err := r.Reflect(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.DepthScore)
	assert.Same(t, doc, final)
}

func TestSchemaEqual_DetectsKeyDrift(t *testing.T) {
	a := map[string]any{"x": 1.0, "y": []any{map[string]any{"z": "v"}}}
	same := map[string]any{"x": 2.0, "y": []any{map[string]any{"z": "w"}}}
	dropped := map[string]any{"x": 1.0}
	added := map[string]any{"x": 1.0, "y": []any{map[string]any{"z": "v"}}, "w": true}

	assert.True(t, schemaEqual(a, same))
	assert.False(t, schemaEqual(a, dropped))
	assert.False(t, schemaEqual(a, added))
}

type assertErr struct{}

func (assertErr) Error() string { return "reflection unavailable" }
