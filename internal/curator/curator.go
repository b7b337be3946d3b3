// Package curator implements the context curator (spec.md §4.13): it
// assembles the bounded, token-budgeted context handed to the narrative
// synthesizer from recent articles, historical memory, decision-context
// modules, perception, and anomaly analysis.
package curator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"briefweaver/internal/anomaly"
	"briefweaver/internal/budget"
	"briefweaver/internal/collab"
	"briefweaver/internal/models"
	"briefweaver/internal/perception"
)

// Curator composes C10-C12 plus the external collaborators from §6.1.
type Curator struct {
	articles    collab.ArticleSource
	profiles    collab.ProfileSource
	perspectives collab.PerspectiveCatalogue
	modules     collab.ContextModuleSource
	perception  *perception.Engine
	anomalies   *anomaly.Detector
	budgeter    *budget.Budgeter
	flags       models.PipelineFlags
	now         func() time.Time
}

// New wires a Curator from its collaborators.
func New(
	articles collab.ArticleSource,
	profiles collab.ProfileSource,
	perspectives collab.PerspectiveCatalogue,
	modules collab.ContextModuleSource,
	perceptionEngine *perception.Engine,
	anomalyDetector *anomaly.Detector,
	budgeter *budget.Budgeter,
	flags models.PipelineFlags,
) *Curator {
	return &Curator{
		articles: articles, profiles: profiles, perspectives: perspectives,
		modules: modules, perception: perceptionEngine, anomalies: anomalyDetector,
		budgeter: budgeter, flags: flags, now: time.Now,
	}
}

// CurateForNarrativeSynthesis assembles the curated context for a window
// of `hours` hours, up to maxArticles articles (spec.md §4.13).
func (c *Curator) CurateForNarrativeSynthesis(ctx context.Context, hours int, maxArticles int) (*models.CuratedContext, error) {
	since := c.now().Add(-time.Duration(hours) * time.Hour)

	currentArticles, err := c.articles.RecentArticles(ctx, since, collab.ArticleFilters{}, maxArticles)
	if err != nil {
		return nil, fmt.Errorf("fetch recent articles: %w", err)
	}

	history, err := c.articles.HistorySummaries(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("fetch history summaries: %w", err)
	}

	var profile *models.UserProfile
	if c.profiles != nil {
		profile, _, err = c.profiles.LoadProfile(ctx)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
	}

	var decisionContext string
	if c.modules != nil {
		modules, err := c.modules.ContextModules(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("load context modules: %w", err)
		}
		decisionContext = renderModulesMarkdown(modules)
	}

	var perceptionBundle *models.PerceptionBundle
	if c.perception != nil {
		perceptionBundle, err = c.perception.Extract(ctx, currentArticles)
		if err != nil {
			perceptionBundle = &models.PerceptionBundle{}
		}
	}

	var anomalyReport *models.AnomalyReport
	if c.anomalies != nil {
		const baselineDays = 30
		baselineSince := since.AddDate(0, 0, -baselineDays)
		baseline, berr := c.articles.RecentArticles(ctx, baselineSince, collab.ArticleFilters{}, 0)
		if berr == nil {
			current := anomaly.Window{Articles: currentArticles, Period: fmt.Sprintf("last %dh", hours), Hours: float64(hours)}
			baselineWindow := anomaly.Window{
				Articles: excludeCurrent(baseline, currentArticles), Period: "prior 30 days",
				Hours: baselineDays * 24,
			}
			anomalyReport = c.anomalies.Detect(current, baselineWindow)
		}
	}

	instructions := c.renderInstructions(ctx, profile)

	curated := &models.CuratedContext{
		UserProfile:     profile,
		DecisionContext: decisionContext,
		Articles:        currentArticles,
		Perception:      perceptionBundle,
		AnomalyAnalysis: anomalyReport,
		Memory:          history,
		Instructions:    instructions,
	}

	if c.budgeter != nil {
		c.budgeter.Enforce(curated)
	}

	return curated, nil
}

// excludeCurrent removes articles already present in current from
// baseline, so the two windows are disjoint for anomaly comparison.
func excludeCurrent(baseline, current []models.Article) []models.Article {
	seen := make(map[string]bool, len(current))
	for _, a := range current {
		seen[a.ID] = true
	}
	var out []models.Article
	for _, a := range baseline {
		if !seen[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

func (c *Curator) renderInstructions(ctx context.Context, profile *models.UserProfile) string {
	if profile == nil || profile.PerspectiveID == "" || c.perspectives == nil {
		return "Provide a balanced, comprehensive intelligence briefing."
	}

	p, err := c.perspectives.GetPerspective(ctx, profile.PerspectiveID)
	if err != nil || p == nil {
		return "Provide a balanced, comprehensive intelligence briefing."
	}

	values := placeholderValues{
		City: profile.Location.City, State: profile.Location.State,
		Region: profile.Location.Region, Country: profile.Location.Country,
		ProfessionalDomains: profile.ProfessionalDomains, CivicInterests: profile.CivicInterests,
		Tone: p.Tone,
	}
	return renderPerspective(p.FrameworkTemplate, values)
}

func renderModulesMarkdown(modules []models.ContextModule) string {
	if len(modules) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Decision Context\n\n")
	for _, m := range modules {
		fmt.Fprintf(&b, "### %s (%s priority)\n%s\n", m.ModuleName, m.Priority, m.Description)
		for _, section := range m.ContentSections {
			fmt.Fprintf(&b, "- %s\n", section)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
