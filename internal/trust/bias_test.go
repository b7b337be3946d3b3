package trust

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/promptlib"
)

func TestAnalyzeBias_EmptyListsAreValid(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.BiasAnalysisSystem, `{"framing_issues": [], "assumptions": [], "omissions": [], "loaded_terms": []}`)

	result := AnalyzeBias(context.Background(), rg, "A neutral statement of fact.")
	assert.True(t, result.Analyzed)
	assert.Empty(t, result.FramingIssues)
}

func TestAnalyzeBias_GatewayFailureSetsAnalyzedFalse(t *testing.T) {
	rg := llmgw.NewRecordedGateway()
	rg.FailNext(promptlib.BiasAnalysisSystem, assertNeverCalled{})

	result := AnalyzeBias(context.Background(), rg, "anything")
	assert.False(t, result.Analyzed)
	assert.NotEmpty(t, result.Error)
}
