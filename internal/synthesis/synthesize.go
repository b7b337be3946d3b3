// Package synthesis implements the narrative synthesizer (spec.md §4.14)
// and the reflection/refinement engine (spec.md §4.15): the two stages
// that turn a curated context into the final intelligence briefing.
package synthesis

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"briefweaver/internal/anomaly"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/perception"
	"briefweaver/internal/promptlib"
)

// SynthesisTemperature is the creative-synthesis temperature called out in
// the gateway's contract comment (spec.md §4.1).
const SynthesisTemperature = 1.0

var citationPattern = regexp.MustCompile(`\^\[(\d+)\]`)

// Synthesizer turns a curated context into a SynthesisDocument.
type Synthesizer struct {
	gw  llmgw.Gateway
	now func() time.Time
}

// New builds a Synthesizer.
func New(gw llmgw.Gateway) *Synthesizer {
	return &Synthesizer{gw: gw, now: time.Now}
}

// Synthesize renders the curated context as a system prompt and asks the
// model to produce the strict-schema briefing, then fills in the
// caller-owned metadata fields the model leaves empty.
func (s *Synthesizer) Synthesize(ctx context.Context, curated *models.CuratedContext, synthesisID string) (*models.SynthesisDocument, error) {
	systemPrompt := renderSystemPrompt(curated)

	raw, err := s.gw.Analyze(ctx, systemPrompt, promptlib.SynthesisTaskDirective, SynthesisTemperature, 0)
	if err != nil {
		return nil, fmt.Errorf("synthesis call: %w", err)
	}

	var doc models.SynthesisDocument
	if err := llmgw.DecodeJSON(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: synthesis response", err)
	}

	doc.Metadata = models.SynthesisMetadata{
		ArticlesAnalyzed: len(curated.Articles),
		GeneratedAt:      s.now().UTC().Format(time.RFC3339),
		SynthesisID:      synthesisID,
		CitationMap:      buildCitationMap(curated.Articles, &doc),
	}

	return &doc, nil
}

// renderSystemPrompt formats the curated context into the markdown-ish
// system prompt text the model sees, reusing the C11/C12 renderers so the
// same presentation logic backs both direct inspection and synthesis.
func renderSystemPrompt(curated *models.CuratedContext) string {
	var b strings.Builder

	b.WriteString(curated.Instructions)
	b.WriteString("\n\n")

	if curated.DecisionContext != "" {
		b.WriteString(curated.DecisionContext)
		b.WriteString("\n\n")
	}

	b.WriteString("## Articles\n\n")
	for i, a := range curated.Articles {
		fmt.Fprintf(&b, "[%d] %s (%s)\n%s\n\n", i+1, a.Title, a.SourceName, a.Content)
	}

	if len(curated.Memory) > 0 {
		b.WriteString("## Prior Briefings\n\n")
		for _, h := range curated.Memory {
			fmt.Fprintf(&b, "- %s: %s\n", h.Date.Format("2006-01-02"), h.Summary)
		}
		b.WriteString("\n")
	}

	if curated.Perception != nil {
		b.WriteString(perception.RenderMarkdown(curated.Perception))
		b.WriteString("\n\n")
	}

	if curated.AnomalyAnalysis != nil {
		b.WriteString(anomaly.RenderMarkdown(curated.AnomalyAnalysis))
	}

	return strings.TrimSpace(b.String())
}

// buildCitationMap resolves every ^[n] marker found anywhere in the
// document back to the article at that 1-based position (spec.md §4.14).
// Citations referencing a position outside the article list are skipped:
// the model occasionally hallucinates an index past the end, and a
// missing citation_map entry is preferable to a fabricated one.
func buildCitationMap(articles []models.Article, doc *models.SynthesisDocument) map[string]models.CitationEntry {
	text := documentText(doc)
	out := map[string]models.CitationEntry{}
	for _, m := range citationPattern.FindAllStringSubmatch(text, -1) {
		idx := m[1]
		if _, ok := out[idx]; ok {
			continue
		}
		n := 0
		fmt.Sscanf(idx, "%d", &n)
		if n < 1 || n > len(articles) {
			continue
		}
		a := articles[n-1]
		out[idx] = models.CitationEntry{Title: a.Title, Source: a.SourceName, URL: a.URL}
	}
	return out
}

// documentText concatenates every free-text field a citation marker can
// appear in, so buildCitationMap only has to scan once.
func documentText(doc *models.SynthesisDocument) string {
	var b strings.Builder
	b.WriteString(doc.BottomLine.Summary)
	for _, a := range doc.BottomLine.ImmediateActions {
		b.WriteString(a)
	}
	for _, group := range [][]models.Trend{
		doc.TrendsAndPatterns.Local, doc.TrendsAndPatterns.StateRegional,
		doc.TrendsAndPatterns.National, doc.TrendsAndPatterns.Global,
		doc.TrendsAndPatterns.NicheField,
	} {
		for _, t := range group {
			b.WriteString(t.Subject)
			b.WriteString(t.Direction)
			b.WriteString(t.Quantifier)
			b.WriteString(t.Description)
		}
	}
	for _, e := range doc.PriorityEvents {
		b.WriteString(e.Event)
		b.WriteString(e.When)
		b.WriteString(e.WhyMatters)
		b.WriteString(e.RecommendedAction)
	}
	for _, group := range [][]models.Prediction{
		doc.PredictionsScenarios.LocalGovernance, doc.PredictionsScenarios.Education,
		doc.PredictionsScenarios.NicheField, doc.PredictionsScenarios.EconomicConditions,
		doc.PredictionsScenarios.Infrastructure,
	} {
		for _, p := range group {
			b.WriteString(p.Prediction)
			b.WriteString(p.Timeframe)
			b.WriteString(p.Rationale)
		}
	}
	return b.String()
}
