package trust

import (
	"strings"

	"briefweaver/internal/models"
)

var significantImpactTerms = []string{"significant", "major", "critical", "strong"}
var criticalRelevanceTerms = []string{"critical", "essential", "important", "key"}

func containsAny(s string, terms []string) bool {
	lower := strings.ToLower(s)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// highSeverityBias counts the signals that make a response's framing
// untrustworthy enough to weigh in the actionability rating (spec.md
// §4.9.2).
func highSeverityBias(bias models.BiasAnalysis) int {
	count := len(bias.FramingIssues)
	for _, a := range bias.Assumptions {
		if containsAny(a.Impact, significantImpactTerms) {
			count++
		}
	}
	for _, o := range bias.Omissions {
		if containsAny(o.Relevance, criticalRelevanceTerms) {
			count++
		}
	}
	return count
}

// RateActionability computes the deterministic terminal trust verdict
// from the three component analyses alone, evaluating rules top-down
// with first match winning (spec.md §4.9.2). This is a pure function: it
// reads no external state and performs no I/O.
func RateActionability(facts models.FactsAnalysis, bias models.BiasAnalysis, intimacy models.IntimacyAnalysis) models.ActionabilityResult {
	totalClaims := facts.TotalClaims
	if totalClaims == 0 {
		totalClaims = len(facts.Verifications)
	}
	factScore := float64(facts.VerifiedCount()) / float64(maxInt(totalClaims, 1))
	hsBias := highSeverityBias(bias)

	switch {
	case facts.ContradictedCount() > 0:
		return models.ActionabilityResult{Rating: models.ActionabilityNo, Reason: "Contains contradicted facts"}
	case intimacy.HighSeverityCount() > 0:
		return models.ActionabilityResult{Rating: models.ActionabilityNo, Reason: "Inappropriate tone detected"}
	case factScore < 0.6:
		return models.ActionabilityResult{Rating: models.ActionabilityCaution, Reason: "Significant unverified claims"}
	case hsBias >= 2:
		return models.ActionabilityResult{Rating: models.ActionabilityCaution, Reason: "Significant framing bias"}
	case factScore >= 0.8 && hsBias == 0:
		return models.ActionabilityResult{Rating: models.ActionabilityYes, Reason: "Strong fact verification, minimal bias"}
	default:
		return models.ActionabilityResult{Rating: models.ActionabilityCaution, Reason: "Mixed verification quality"}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
