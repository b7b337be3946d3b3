package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"briefweaver/internal/models"
)

func verification(v models.Verdict) models.FactVerification {
	return models.FactVerification{Verdict: v}
}

func TestRateActionability_ContradictedAlwaysNo(t *testing.T) {
	facts := models.FactsAnalysis{TotalClaims: 2, Verifications: []models.FactVerification{
		verification(models.VerdictVerified), verification(models.VerdictContradicted),
	}}
	result := RateActionability(facts, models.BiasAnalysis{}, models.IntimacyAnalysis{})
	assert.Equal(t, models.ActionabilityNo, result.Rating)
	assert.Equal(t, "Contains contradicted facts", result.Reason)
}

func TestRateActionability_HighSeverityIntimacyAlwaysNo(t *testing.T) {
	facts := models.FactsAnalysis{TotalClaims: 1, Verifications: []models.FactVerification{verification(models.VerdictVerified)}}
	intimacy := models.IntimacyAnalysis{Issues: []models.IntimacyIssue{{Severity: models.SeverityHigh, Category: models.IntimacyEmotion}}}
	result := RateActionability(facts, models.BiasAnalysis{}, intimacy)
	assert.Equal(t, models.ActionabilityNo, result.Rating)
	assert.Equal(t, "Inappropriate tone detected", result.Reason)
}

func TestRateActionability_LowFactScoreIsCaution(t *testing.T) {
	facts := models.FactsAnalysis{TotalClaims: 3, Verifications: []models.FactVerification{
		verification(models.VerdictVerified), verification(models.VerdictUnverifiable), verification(models.VerdictUnverifiable),
	}}
	result := RateActionability(facts, models.BiasAnalysis{}, models.IntimacyAnalysis{})
	assert.Equal(t, models.ActionabilityCaution, result.Rating)
	assert.Equal(t, "Significant unverified claims", result.Reason)
}

func TestRateActionability_HighBiasIsCaution(t *testing.T) {
	facts := models.FactsAnalysis{TotalClaims: 1, Verifications: []models.FactVerification{verification(models.VerdictVerified)}}
	bias := models.BiasAnalysis{FramingIssues: []models.FramingIssue{{}, {}}}
	result := RateActionability(facts, bias, models.IntimacyAnalysis{})
	assert.Equal(t, models.ActionabilityCaution, result.Rating)
	assert.Equal(t, "Significant framing bias", result.Reason)
}

func TestRateActionability_StrongVerificationIsYes(t *testing.T) {
	facts := models.FactsAnalysis{TotalClaims: 1, Verifications: []models.FactVerification{verification(models.VerdictVerified)}}
	result := RateActionability(facts, models.BiasAnalysis{}, models.IntimacyAnalysis{})
	assert.Equal(t, models.ActionabilityYes, result.Rating)
}

func TestRateActionability_EmptyResponseYieldsYesOrCaution(t *testing.T) {
	result := RateActionability(models.FactsAnalysis{}, models.BiasAnalysis{}, models.IntimacyAnalysis{})
	assert.Contains(t, []models.Actionability{models.ActionabilityYes, models.ActionabilityCaution}, result.Rating)
}

func TestRateActionability_MixedIsDefaultCaution(t *testing.T) {
	facts := models.FactsAnalysis{TotalClaims: 5, Verifications: []models.FactVerification{
		verification(models.VerdictVerified), verification(models.VerdictVerified),
		verification(models.VerdictVerified), verification(models.VerdictVerified),
		verification(models.VerdictUnverifiable),
	}}
	bias := models.BiasAnalysis{FramingIssues: []models.FramingIssue{{}}}
	result := RateActionability(facts, bias, models.IntimacyAnalysis{})
	assert.Equal(t, models.ActionabilityCaution, result.Rating)
	assert.Equal(t, "Mixed verification quality", result.Reason)
}
