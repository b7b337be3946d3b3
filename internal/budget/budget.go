// Package budget implements the token budgeter (spec.md §4.10): a pure
// function over a curated context that estimates token usage with a
// 4-chars/token approximation and compresses the context in place along a
// fixed schedule.
package budget

import (
	"encoding/json"

	"briefweaver/internal/models"
)

// charsPerToken is the approximation used throughout (spec.md §4.10).
const charsPerToken = 4

// Fixed section budgets, in tokens. totalWindow is the 200,000-token window
// the total estimate is reported against; the section budgets do not sum
// to it.
const (
	SystemPromptBudget = 5000
	ArticlesBudget     = 50000
	HistoricalBudget   = 10000
	ResponseBudget     = 8000
	totalWindow        = 200000
)

func estimateTokens(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}

// Budgeter enforces the fixed token budget on a CuratedContext.
type Budgeter struct{}

// New builds a Budgeter.
func New() *Budgeter {
	return &Budgeter{}
}

// Enforce compresses ctx in place by applying the compression schedule in
// order: while the articles section is over its budget, reduce article
// count to 30, then to 20; when the historical section is over its budget,
// trim historical memory to two summaries. The system prompt is never
// compressed, and a section can still exceed its budget once the schedule
// is exhausted. Returns the final token metadata, which is also attached to
// ctx (spec.md §4.10). Idempotent: calling Enforce again on an
// already-compressed context changes nothing further.
func (b *Budgeter) Enforce(ctx *models.CuratedContext) models.TokenMetadata {
	meta := b.estimate(ctx)

	if articlesOverBudget(meta) && len(ctx.Articles) > 30 {
		ctx.Articles = ctx.Articles[:30]
		meta = b.estimate(ctx)
	}

	if articlesOverBudget(meta) && len(ctx.Articles) > 20 {
		ctx.Articles = ctx.Articles[:20]
		meta = b.estimate(ctx)
	}

	if historicalOverBudget(meta) && len(ctx.Memory) > 2 {
		ctx.Memory = ctx.Memory[:2]
		meta = b.estimate(ctx)
	}

	ctx.TokenMetadata = meta
	return meta
}

func articlesOverBudget(meta models.TokenMetadata) bool {
	for _, s := range meta.Sections {
		if s.Section == "articles" {
			return s.TokenCount > s.Budget
		}
	}
	return false
}

func historicalOverBudget(meta models.TokenMetadata) bool {
	for _, s := range meta.Sections {
		if s.Section == "historical" {
			return s.TokenCount > s.Budget
		}
	}
	return false
}

// estimate computes per-section token estimates without mutating ctx.
func (b *Budgeter) estimate(ctx *models.CuratedContext) models.TokenMetadata {
	sections := []models.TokenEstimate{
		b.sectionEstimate("system_prompt", ctx.Instructions, SystemPromptBudget),
		b.sectionEstimate("articles", articlesText(ctx.Articles), ArticlesBudget),
		b.sectionEstimate("historical", historyText(ctx.Memory), HistoricalBudget),
	}

	total := 0
	for _, s := range sections {
		total += s.TokenCount
	}

	return models.TokenMetadata{
		Sections: sections,
		Total:    total,
		Budget:   totalWindow,
	}
}

func (b *Budgeter) sectionEstimate(name, text string, budget int) models.TokenEstimate {
	tokens := estimateTokens(text)
	return models.TokenEstimate{
		Section:    name,
		CharCount:  len(text),
		TokenCount: tokens,
		Budget:     budget,
	}
}

func articlesText(articles []models.Article) string {
	b, _ := json.Marshal(articles)
	return string(b)
}

func historyText(memory []models.HistorySummary) string {
	b, _ := json.Marshal(memory)
	return string(b)
}
