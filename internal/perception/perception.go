// Package perception implements the perception engine (spec.md §4.11):
// a single low-temperature LLM call that extracts cross-article entities,
// connections, and event sequences from a batch of recent articles.
package perception

import (
	"context"
	"fmt"
	"strings"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// maxArticles caps the batch passed to a single perception call
// (spec.md §4.11: "up to N, typically 50").
const maxArticles = 50

// Engine extracts cross-article patterns.
type Engine struct {
	gw llmgw.Gateway
}

// New builds a perception Engine.
func New(gw llmgw.Gateway) *Engine {
	return &Engine{gw: gw}
}

// Extract runs the perception call over articles (truncated to the first
// maxArticles). A parse failure yields an empty bundle and no error; a
// gateway failure yields an empty bundle together with the gateway's
// error, which the curator absorbs so that curation is not aborted.
func (e *Engine) Extract(ctx context.Context, articles []models.Article) (*models.PerceptionBundle, error) {
	if len(articles) == 0 {
		return &models.PerceptionBundle{}, nil
	}
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	raw, err := e.gw.Analyze(ctx, promptlib.PerceptionSystem, formatArticles(articles), 0.2, 2000)
	if err != nil {
		return &models.PerceptionBundle{}, err
	}

	bundle, ok := llmgw.TryDecodeJSON[models.PerceptionBundle](raw)
	if !ok {
		return &models.PerceptionBundle{}, nil
	}
	return &bundle, nil
}

func formatArticles(articles []models.Article) string {
	var b strings.Builder
	for _, a := range articles {
		fmt.Fprintf(&b, "[%s] %s (%s): %s\n\n", a.ID, a.Title, a.SourceName, truncate(a.Content, 1000))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RenderMarkdown formats a perception bundle as a short Markdown block
// for inclusion in curated context (spec.md §4.11).
func RenderMarkdown(bundle *models.PerceptionBundle) string {
	if bundle == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Cross-Article Patterns\n\n")

	if len(bundle.EntityMentions) > 0 {
		b.WriteString("### Recurring entities\n")
		for _, em := range bundle.EntityMentions {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", em.Entity, em.Type, em.Significance)
		}
		b.WriteString("\n")
	}

	if len(bundle.CrossArticleConnections) > 0 {
		b.WriteString("### Connections\n")
		for _, c := range bundle.CrossArticleConnections {
			fmt.Fprintf(&b, "- (%s) %s\n", c.Strength, c.Description)
		}
		b.WriteString("\n")
	}

	if len(bundle.EventSequences) > 0 {
		b.WriteString("### Developing situations\n")
		for _, es := range bundle.EventSequences {
			fmt.Fprintf(&b, "- %s\n", es.Description)
		}
	}

	return strings.TrimSpace(b.String())
}
