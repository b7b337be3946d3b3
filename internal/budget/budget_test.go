package budget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefweaver/internal/models"
)

func bigArticles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = models.Article{ID: string(rune('a' + i%26)), Content: strings.Repeat("word ", 20000)}
	}
	return out
}

func TestEnforce_WithinBudgetUnchanged(t *testing.T) {
	ctx := &models.CuratedContext{
		Instructions: "short instructions",
		Articles:     []models.Article{{ID: "1", Content: "short article"}},
	}
	b := New()
	meta := b.Enforce(ctx)
	assert.Len(t, ctx.Articles, 1)
	assert.LessOrEqual(t, meta.Total, meta.Budget)
}

func TestEnforce_CompressesArticlesTo30Then20(t *testing.T) {
	ctx := &models.CuratedContext{Articles: bigArticles(100)}
	b := New()
	b.Enforce(ctx)
	assert.Len(t, ctx.Articles, 20)
}

func TestEnforce_TrimsHistoricalMemory(t *testing.T) {
	memory := make([]models.HistorySummary, 20)
	for i := range memory {
		memory[i] = models.HistorySummary{Summary: strings.Repeat("summary text ", 2000)}
	}
	ctx := &models.CuratedContext{Memory: memory}
	b := New()
	b.Enforce(ctx)
	assert.LessOrEqual(t, len(ctx.Memory), 2)
}

func TestEnforce_Idempotent(t *testing.T) {
	ctx := &models.CuratedContext{Articles: bigArticles(100)}
	b := New()

	first := b.Enforce(ctx)
	firstLen := len(ctx.Articles)
	second := b.Enforce(ctx)

	require.Equal(t, first.Total, second.Total)
	assert.Equal(t, firstLen, len(ctx.Articles))
}

func TestEnforce_AttachesTokenMetadataToContext(t *testing.T) {
	ctx := &models.CuratedContext{Instructions: "hello"}
	b := New()
	meta := b.Enforce(ctx)
	assert.Equal(t, meta, ctx.TokenMetadata)
	assert.NotEmpty(t, ctx.TokenMetadata.Sections)
}
