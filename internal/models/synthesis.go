package models

// BottomLine is the top-level executive summary of a synthesis document.
type BottomLine struct {
	Summary          string   `json:"summary"`
	ImmediateActions []string `json:"immediate_actions"`
}

// Trend is one entry in a trends_and_patterns scope.
type Trend struct {
	Subject          string   `json:"subject"`
	Direction        string   `json:"direction"`
	Quantifier       string   `json:"quantifier"`
	Description      string   `json:"description"`
	Confidence       float64  `json:"confidence"`
	ArticleCitations []int    `json:"article_citations"`
}

// TrendsAndPatterns has five fixed geographic scopes.
type TrendsAndPatterns struct {
	Local         []Trend `json:"local"`
	StateRegional []Trend `json:"state_regional"`
	National      []Trend `json:"national"`
	Global        []Trend `json:"global"`
	NicheField    []Trend `json:"niche_field"`
}

// PriorityEvent is one entry in the priority_events list.
type PriorityEvent struct {
	Event              string      `json:"event"`
	When               string      `json:"when"`
	ImpactLevel        ImpactLevel `json:"impact_level"`
	WhyMatters         string      `json:"why_matters"`
	RecommendedAction  string      `json:"recommended_action"`
	Confidence         float64     `json:"confidence"`
	ArticleCitations   []int       `json:"article_citations"`
}

// Prediction is one entry in a predictions_scenarios category.
type Prediction struct {
	Prediction       string  `json:"prediction"`
	Confidence       float64 `json:"confidence"`
	Timeframe        string  `json:"timeframe"`
	Rationale        string  `json:"rationale"`
	ArticleCitations []int   `json:"article_citations"`
}

// PredictionsScenarios has five fixed categories.
type PredictionsScenarios struct {
	LocalGovernance    []Prediction `json:"local_governance"`
	Education          []Prediction `json:"education"`
	NicheField         []Prediction `json:"niche_field"`
	EconomicConditions []Prediction `json:"economic_conditions"`
	Infrastructure     []Prediction `json:"infrastructure"`
}

// CitationEntry is one row of metadata.citation_map.
type CitationEntry struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// SynthesisMetadata carries provenance about how the document was produced.
type SynthesisMetadata struct {
	ArticlesAnalyzed int                      `json:"articles_analyzed"`
	GeneratedAt      string                   `json:"generated_at"` // ISO UTC
	SynthesisID      string                   `json:"synthesis_id"`
	CitationMap      map[string]CitationEntry `json:"citation_map"`
}

// SynthesisDocument is the strict-schema output of the narrative synthesizer
// (and, after refinement, the reflection engine). The set of top-level keys
// must always equal exactly these five fields.
type SynthesisDocument struct {
	BottomLine           BottomLine           `json:"bottom_line"`
	TrendsAndPatterns    TrendsAndPatterns    `json:"trends_and_patterns"`
	PriorityEvents       []PriorityEvent      `json:"priority_events"`
	PredictionsScenarios PredictionsScenarios `json:"predictions_scenarios"`
	Metadata             SynthesisMetadata    `json:"metadata"`
}

// ReflectionResult is the output of the C15 self-critique pass.
type ReflectionResult struct {
	DepthScore          float64            `json:"depth_score"`
	DimensionScores     map[string]float64 `json:"dimension_scores"`
	ShallowAreas        []string           `json:"shallow_areas"`
	MissingConnections  []string           `json:"missing_connections"`
	Recommendations     []string           `json:"recommendations"`
}
