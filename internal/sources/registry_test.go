package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

func testCatalogue() models.SourceCatalogue {
	return models.SourceCatalogue{
		Sources: []models.AuthoritativeSource{
			{
				Name:     "Corporate leadership tracker",
				Keywords: []string{"ceo", "ExampleCorp"},
				URL:      "https://example.com/leadership",
				QueryPrompt: "Who is the current CEO?",
			},
			{
				Name:                      "Wikipedia current leaders",
				Keywords:                  []string{"prime minister", "president"},
				URLTemplate:               "https://en.wikipedia.org/wiki/{country}",
				RequiresCountryExtraction: true,
				QueryPrompt:               "Who is the current leader of {country}?",
			},
		},
		Fallback: models.FallbackDescriptor{Enabled: true, Reason: "no authoritative source available"},
	}
}

func TestFindByKeyword_Match(t *testing.T) {
	reg := NewRegistry(testCatalogue())
	src, score := reg.FindByKeyword("The CEO of ExampleCorp is Jane Doe")
	require.NotNil(t, src)
	assert.Equal(t, "Corporate leadership tracker", src.Name)
	assert.Greater(t, score, 0)
}

func TestFindByKeyword_NoMatch(t *testing.T) {
	reg := NewRegistry(testCatalogue())
	src, _ := reg.FindByKeyword("Python was created by Guido van Rossum")
	assert.Nil(t, src)
}

func TestFindByKeyword_EmptyRegistryNoLLMCall(t *testing.T) {
	reg := NewRegistry(models.SourceCatalogue{})
	assert.True(t, reg.Empty())
	src, _ := reg.FindByKeyword("anything")
	assert.Nil(t, src)

	rg := llmgw.NewRecordedGateway()
	match, _, _ := reg.FindByLLM(context.Background(), rg, "anything")
	assert.Nil(t, match)
	assert.Equal(t, 0, rg.TotalCalls())
}

func TestFindByLLM_ValidMatch(t *testing.T) {
	reg := NewRegistry(testCatalogue())
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.SourceMatchSystem, `{"best_match_id": 1, "confidence": 0.9, "reasoning": "mentions prime minister"}`)

	match, conf, reason := reg.FindByLLM(context.Background(), rg, "Who is the Prime Minister of India?")
	require.NotNil(t, match)
	assert.Equal(t, "Wikipedia current leaders", match.Name)
	assert.Equal(t, 0.9, conf)
	assert.NotEmpty(t, reason)
}

func TestFindByLLM_OutOfRangeIsNil(t *testing.T) {
	reg := NewRegistry(testCatalogue())
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.SourceMatchSystem, `{"best_match_id": 99, "confidence": 0.5, "reasoning": "bad"}`)

	match, _, _ := reg.FindByLLM(context.Background(), rg, "something")
	assert.Nil(t, match)
}

func TestResolveURL_CountryExtractionUnderscoreForWikipedia(t *testing.T) {
	reg := NewRegistry(testCatalogue())
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.CountryExtractionSystem, `{"country": "India", "slug_hyphen": "india", "slug_underscore": "India"}`)

	src := testCatalogue().Sources[1]
	url, ok := reg.ResolveURL(context.Background(), rg, src, "Who is the Prime Minister of India?")
	require.True(t, ok)
	assert.Equal(t, "https://en.wikipedia.org/wiki/India", url)
}

func TestResolveURL_ExtractionFailureReturnsFalse(t *testing.T) {
	reg := NewRegistry(testCatalogue())
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.CountryExtractionSystem, `not json`)

	src := testCatalogue().Sources[1]
	_, ok := reg.ResolveURL(context.Background(), rg, src, "claim")
	assert.False(t, ok)
}

func TestResolveURL_PlainURLNoExtraction(t *testing.T) {
	reg := NewRegistry(testCatalogue())
	rg := llmgw.NewRecordedGateway()
	src := testCatalogue().Sources[0]
	url, ok := reg.ResolveURL(context.Background(), rg, src, "claim")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/leadership", url)
}
