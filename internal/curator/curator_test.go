package curator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefweaver/internal/anomaly"
	"briefweaver/internal/budget"
	"briefweaver/internal/collab"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/perception"
	"briefweaver/internal/promptlib"
)

type fakeArticles struct {
	recent  []models.Article
	history []models.HistorySummary
}

func (f fakeArticles) RecentArticles(ctx context.Context, since time.Time, filters collab.ArticleFilters, limit int) ([]models.Article, error) {
	return f.recent, nil
}
func (f fakeArticles) HistorySummaries(ctx context.Context, limit int) ([]models.HistorySummary, error) {
	return f.history, nil
}

type fakeProfiles struct {
	profile *models.UserProfile
}

func (f fakeProfiles) LoadProfile(ctx context.Context) (*models.UserProfile, bool, error) {
	if f.profile == nil {
		return nil, false, nil
	}
	return f.profile, true, nil
}

type fakePerspectives struct{ p *models.Perspective }

func (f fakePerspectives) GetPerspective(ctx context.Context, id string) (*models.Perspective, error) {
	return f.p, nil
}

type fakeModules struct{ modules []models.ContextModule }

func (f fakeModules) ContextModules(ctx context.Context, moduleType string) ([]models.ContextModule, error) {
	return f.modules, nil
}

func TestCurateForNarrativeSynthesis_ComposesFixedKeys(t *testing.T) {
	articles := fakeArticles{
		recent:  []models.Article{{ID: "1", Title: "Budget approved", SourceName: "Wire", Content: "details"}},
		history: []models.HistorySummary{{Date: time.Now(), Summary: "yesterday's brief"}},
	}
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.PerceptionSystem, `{"entity_mentions": [], "cross_article_connections": [], "event_sequences": []}`)

	c := New(articles, fakeProfiles{}, fakePerspectives{}, fakeModules{}, perception.New(rg), anomaly.New(), budget.New(), models.PipelineFlags{})
	curated, err := c.CurateForNarrativeSynthesis(context.Background(), 24, 50)
	require.NoError(t, err)

	assert.Len(t, curated.Articles, 1)
	assert.Len(t, curated.Memory, 1)
	assert.NotNil(t, curated.Perception)
	assert.NotNil(t, curated.AnomalyAnalysis)
	assert.NotEmpty(t, curated.Instructions)
	assert.NotEmpty(t, curated.TokenMetadata.Sections)
}

func TestCurateForNarrativeSynthesis_NoProfileUsesGenericInstructions(t *testing.T) {
	articles := fakeArticles{}
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.PerceptionSystem, `{"entity_mentions": [], "cross_article_connections": [], "event_sequences": []}`)

	c := New(articles, fakeProfiles{}, fakePerspectives{}, fakeModules{}, perception.New(rg), anomaly.New(), budget.New(), models.PipelineFlags{})
	curated, err := c.CurateForNarrativeSynthesis(context.Background(), 24, 50)
	require.NoError(t, err)
	assert.Contains(t, curated.Instructions, "balanced, comprehensive")
}

func TestCurateForNarrativeSynthesis_ProfileDrivesPerspectiveRendering(t *testing.T) {
	profile := &models.UserProfile{
		Location:      models.Location{City: "Springfield", State: "Illinois"},
		CivicInterests: []string{"school board"},
		PerspectiveID:  "local-civic",
	}
	perspective := &models.Perspective{
		Name:              "Local Civic Analyst",
		FrameworkTemplate: "Focus on {city}, {state} with civic interests in {civic_focus}.",
		Tone:              "measured",
	}
	rg := llmgw.NewRecordedGateway()
	rg.Enqueue(promptlib.PerceptionSystem, `{"entity_mentions": [], "cross_article_connections": [], "event_sequences": []}`)

	c := New(fakeArticles{}, fakeProfiles{profile: profile}, fakePerspectives{p: perspective}, fakeModules{}, perception.New(rg), anomaly.New(), budget.New(), models.PipelineFlags{})
	curated, err := c.CurateForNarrativeSynthesis(context.Background(), 24, 50)
	require.NoError(t, err)
	assert.Contains(t, curated.Instructions, "Springfield")
	assert.Contains(t, curated.Instructions, "school board")
}
