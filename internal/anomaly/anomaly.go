// Package anomaly implements the anomaly detector (spec.md §4.12): a
// purely statistical comparison of the current article window against a
// rolling baseline, with no LLM involvement.
package anomaly

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"briefweaver/internal/models"
)

// Detector compares current-window articles against a baseline window.
type Detector struct{}

// New builds a Detector.
func New() *Detector {
	return &Detector{}
}

// Window describes one article window for comparison.
type Window struct {
	Articles []models.Article
	Period   string // human-readable label, e.g. "last 24h"

	// Hours is the window's duration in hours, used to normalise the
	// baseline count to the current window length before comparing
	// volumes (spec.md §4.12). A zero value on either window disables
	// normalisation and compares raw counts.
	Hours float64
}

var wordRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Detect compares current against baseline. If baseline has no articles,
// HasBaseline is false and no anomalies are derived — this never panics
// on an empty baseline (spec.md §8).
func (d *Detector) Detect(current, baseline Window) *models.AnomalyReport {
	report := &models.AnomalyReport{
		HasBaseline:          len(baseline.Articles) > 0,
		BaselinePeriod:       baseline.Period,
		CurrentPeriod:        current.Period,
		CurrentArticleCount:  len(current.Articles),
		BaselineArticleCount: len(baseline.Articles),
	}

	if !report.HasBaseline {
		report.Summary = "no baseline data available for comparison"
		return report
	}

	var anomalies []models.Anomaly
	anomalies = append(anomalies, d.volumeAnomalies(current, baseline)...)
	// An empty current window has no topics or sources to compare against
	// the baseline at all; treating "absent" as "missing" would flag every
	// baseline topic/source as anomalous. Only volume_drop may fire here
	// (spec.md §4.12).
	if len(current.Articles) > 0 {
		anomalies = append(anomalies, d.topicAnomalies(current, baseline)...)
		anomalies = append(anomalies, d.sourceAnomalies(current, baseline)...)
	}

	report.Anomalies = anomalies
	report.Summary = summarize(anomalies)
	return report
}

func (d *Detector) volumeAnomalies(current, baseline Window) []models.Anomaly {
	expected := float64(len(baseline.Articles))
	currentCount := float64(len(current.Articles))

	if current.Hours > 0 && baseline.Hours > 0 {
		expected = expected * (current.Hours / baseline.Hours)
	}

	var out []models.Anomaly
	if expected == 0 {
		return out
	}
	if currentCount > 1.5*expected {
		out = append(out, models.Anomaly{
			Type: "volume_spike", Severity: models.AnomalySeverityMedium,
			Description: "article volume significantly above baseline",
			Current:     currentCount, Baseline: expected, Expected: expected,
		})
	} else if currentCount < 0.5*expected {
		out = append(out, models.Anomaly{
			Type: "volume_drop", Severity: models.AnomalySeverityLow,
			Description: "article volume significantly below baseline",
			Current:     currentCount, Baseline: expected, Expected: expected,
		})
	}
	return out
}

func keywordCounts(articles []models.Article) map[string]int {
	counts := make(map[string]int)
	for _, a := range articles {
		for _, tok := range wordRegex.FindAllString(strings.ToLower(a.Title), -1) {
			if len(tok) > 4 {
				counts[tok]++
			}
		}
	}
	return counts
}

func topN(counts map[string]int, n int) []string {
	type kv struct {
		k string
		v int
	}
	kvs := make([]kv, 0, len(counts))
	for k, v := range counts {
		kvs = append(kvs, kv{k, v})
	}
	sort.Slice(kvs, func(i, j int) bool {
		if kvs[i].v != kvs[j].v {
			return kvs[i].v > kvs[j].v
		}
		return kvs[i].k < kvs[j].k
	})
	if len(kvs) > n {
		kvs = kvs[:n]
	}
	out := make([]string, len(kvs))
	for i, e := range kvs {
		out[i] = e.k
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (d *Detector) topicAnomalies(current, baseline Window) []models.Anomaly {
	currentCounts := keywordCounts(current.Articles)
	baselineCounts := keywordCounts(baseline.Articles)

	currentTop10 := topN(currentCounts, 10)
	baselineTop20 := topN(baselineCounts, 20)
	baselineTop10 := topN(baselineCounts, 10)

	var emerging, missing []string
	for _, topic := range currentTop10 {
		if currentCounts[topic] >= 3 && !contains(baselineTop20, topic) {
			emerging = append(emerging, topic)
			if len(emerging) == 3 {
				break
			}
		}
	}
	currentTop20 := topN(currentCounts, 20)
	for _, topic := range baselineTop10 {
		if !contains(currentTop20, topic) {
			missing = append(missing, topic)
		}
	}

	var out []models.Anomaly
	if len(emerging) > 0 {
		out = append(out, models.Anomaly{
			Type: "emerging_topics", Severity: models.AnomalySeverityMedium,
			Description: "new topics trending: " + strings.Join(emerging, ", "),
		})
	}
	if len(missing) > 0 {
		out = append(out, models.Anomaly{
			Type: "missing_topics", Severity: models.AnomalySeverityLow,
			Description: "previously prominent topics absent: " + strings.Join(missing, ", "),
		})
	}
	return out
}

func sourceCounts(articles []models.Article) map[string]int {
	counts := make(map[string]int)
	for _, a := range articles {
		counts[a.SourceName]++
	}
	return counts
}

func (d *Detector) sourceAnomalies(current, baseline Window) []models.Anomaly {
	currentCounts := sourceCounts(current.Articles)
	baselineCounts := sourceCounts(baseline.Articles)

	type kv struct {
		source string
		anom   models.Anomaly
	}
	var candidates []kv

	for source, currentCount := range currentCounts {
		baselineCount, hasBaseline := baselineCounts[source]
		if hasBaseline && baselineCount > 0 {
			if float64(currentCount) > 2*float64(baselineCount) {
				candidates = append(candidates, kv{source, models.Anomaly{
					Type: "source_spike", Severity: models.AnomalySeverityLow,
					Description: fmt.Sprintf("%s publishing volume spiked", source),
					Current:     float64(currentCount), Baseline: float64(baselineCount),
				}})
			}
		} else if currentCount >= 5 {
			candidates = append(candidates, kv{source, models.Anomaly{
				Type: "new_source_active", Severity: models.AnomalySeverityLow,
				Description: fmt.Sprintf("%s newly active with %d articles", source, currentCount),
				Current:     float64(currentCount),
			}})
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].source < candidates[j].source })
	if len(candidates) > 2 {
		candidates = candidates[:2]
	}

	out := make([]models.Anomaly, len(candidates))
	for i, c := range candidates {
		out[i] = c.anom
	}
	return out
}

func summarize(anomalies []models.Anomaly) string {
	if len(anomalies) == 0 {
		return "no notable anomalies detected"
	}
	parts := make([]string, len(anomalies))
	for i, a := range anomalies {
		parts[i] = a.Type
	}
	return fmt.Sprintf("%d anomalies detected: %s", len(anomalies), strings.Join(parts, ", "))
}

// RenderMarkdown formats a report as a short Markdown block for context
// injection (spec.md §4.12).
func RenderMarkdown(report *models.AnomalyReport) string {
	if report == nil || !report.HasBaseline {
		return "## Anomaly Detection\n\nNo baseline available for comparison."
	}

	var b strings.Builder
	b.WriteString("## Anomaly Detection\n\n")
	if len(report.Anomalies) == 0 {
		b.WriteString("No notable anomalies detected.\n")
		return strings.TrimSpace(b.String())
	}
	for _, a := range report.Anomalies {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", a.Type, a.Severity, a.Description)
	}
	return strings.TrimSpace(b.String())
}
