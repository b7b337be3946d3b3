package filemem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefweaver/internal/collab"
)

func TestRecentArticles_FiltersByRecency(t *testing.T) {
	s := New("testdata")
	since := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	articles, err := s.RecentArticles(context.Background(), since, collab.ArticleFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "1", articles[0].ID)
}

func TestHistorySummaries_SortedDescending(t *testing.T) {
	s := New("testdata")
	summaries, err := s.HistorySummaries(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.True(t, summaries[0].Date.After(summaries[1].Date))
}

func TestLoadProfile_Found(t *testing.T) {
	s := New("testdata")
	profile, ok, err := s.LoadProfile(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Springfield", profile.Location.City)
}

func TestLoadProfile_MissingFileReturnsNotFound(t *testing.T) {
	s := New("testdata-missing")
	profile, ok, err := s.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, profile)
}

func TestGetPerspective_Found(t *testing.T) {
	s := New("testdata")
	p, err := s.GetPerspective(context.Background(), "local-civic")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Local Civic Analyst", p.Name)
}

func TestContextModules_FiltersByType(t *testing.T) {
	s := New("testdata")
	modules, err := s.ContextModules(context.Background(), "domain_knowledge")
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "Municipal Budget Primer", modules[0].ModuleName)

	none, err := s.ContextModules(context.Background(), "supplemental")
	require.NoError(t, err)
	assert.Empty(t, none)
}
