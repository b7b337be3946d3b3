package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefweaver/internal/models"
)

func articlesWithTitles(titles ...string) []models.Article {
	out := make([]models.Article, len(titles))
	for i, t := range titles {
		out[i] = models.Article{ID: t, Title: t, SourceName: "TestWire"}
	}
	return out
}

func TestDetect_EmptyBaselineNeverPanics(t *testing.T) {
	d := New()
	report := d.Detect(Window{Articles: articlesWithTitles("flooding downtown")}, Window{})
	require.NotNil(t, report)
	assert.False(t, report.HasBaseline)
	assert.Empty(t, report.Anomalies)
}

func TestDetect_EmptyCurrentNeverPanics(t *testing.T) {
	d := New()
	report := d.Detect(Window{}, Window{Articles: articlesWithTitles("election results", "budget meeting")})
	require.NotNil(t, report)
	assert.True(t, report.HasBaseline)
	for _, a := range report.Anomalies {
		assert.NotEqual(t, "missing_topics", a.Type)
		assert.NotEqual(t, "emerging_topics", a.Type)
		assert.NotEqual(t, "source_spike", a.Type)
	}
}

func TestDetect_VolumeSpike(t *testing.T) {
	d := New()
	baseline := Window{Articles: make([]models.Article, 10)}
	current := Window{Articles: make([]models.Article, 20)}
	report := d.Detect(current, baseline)

	require.True(t, report.HasBaseline)
	found := false
	for _, a := range report.Anomalies {
		if a.Type == "volume_spike" {
			found = true
			assert.Equal(t, models.AnomalySeverityMedium, a.Severity)
		}
	}
	assert.True(t, found)
}

func TestDetect_VolumeDrop(t *testing.T) {
	d := New()
	baseline := Window{Articles: make([]models.Article, 10)}
	current := Window{Articles: make([]models.Article, 2)}
	report := d.Detect(current, baseline)

	found := false
	for _, a := range report.Anomalies {
		if a.Type == "volume_drop" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetect_NewSourceActive(t *testing.T) {
	d := New()
	current := Window{Articles: []models.Article{
		{ID: "1", SourceName: "NewOutlet"}, {ID: "2", SourceName: "NewOutlet"},
		{ID: "3", SourceName: "NewOutlet"}, {ID: "4", SourceName: "NewOutlet"},
		{ID: "5", SourceName: "NewOutlet"},
	}}
	baseline := Window{Articles: []models.Article{{ID: "b1", SourceName: "OldOutlet"}}}
	report := d.Detect(current, baseline)

	found := false
	for _, a := range report.Anomalies {
		if a.Type == "new_source_active" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRenderMarkdown_NoBaseline(t *testing.T) {
	md := RenderMarkdown(&models.AnomalyReport{HasBaseline: false})
	assert.Contains(t, md, "No baseline")
}
