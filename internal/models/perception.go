package models

// EntityMention is a cross-article entity surfaced by the perception engine.
type EntityMention struct {
	Entity       string   `json:"entity"`
	Type         string   `json:"type"`
	ArticleIDs   []string `json:"article_ids"`
	Significance string   `json:"significance"`
}

// CrossArticleConnection links two or more articles around a shared thread.
type CrossArticleConnection struct {
	Description string   `json:"description"`
	ArticleIDs  []string `json:"article_ids"`
	Strength    string   `json:"strength"`
}

// EventSequence is an ordered chain of related events across articles.
type EventSequence struct {
	Description string   `json:"description"`
	ArticleIDs  []string `json:"article_ids"`
	Order       []string `json:"order"`
}

// PerceptionBundle is the pre-synthesis cross-article extraction.
type PerceptionBundle struct {
	EntityMentions          []EntityMention          `json:"entity_mentions"`
	CrossArticleConnections []CrossArticleConnection `json:"cross_article_connections"`
	EventSequences          []EventSequence          `json:"event_sequences"`
}

// Anomaly is one detected deviation from baseline.
type Anomaly struct {
	Type        string          `json:"type"`
	Severity    AnomalySeverity `json:"severity"`
	Description string          `json:"description"`
	Current     float64         `json:"current,omitempty"`
	Baseline    float64         `json:"baseline,omitempty"`
	Expected    float64         `json:"expected,omitempty"`
}

// AnomalyReport compares the current article window against a baseline.
type AnomalyReport struct {
	HasBaseline         bool      `json:"has_baseline"`
	BaselinePeriod       string    `json:"baseline_period"`
	CurrentPeriod        string    `json:"current_period"`
	CurrentArticleCount  int       `json:"current_article_count"`
	BaselineArticleCount int       `json:"baseline_article_count"`
	Anomalies            []Anomaly `json:"anomalies"`
	Summary              string    `json:"summary"`
}

// TokenEstimate is the estimated token usage of one context section.
type TokenEstimate struct {
	Section    string `json:"section"`
	CharCount  int    `json:"char_count"`
	TokenCount int    `json:"token_count"`
	Budget     int    `json:"budget"`
}

// TokenMetadata is attached to every curated context.
type TokenMetadata struct {
	Sections []TokenEstimate `json:"sections"`
	Total    int             `json:"total_tokens"`
	Budget   int             `json:"budget_tokens"`
}

// CuratedContext is the bounded, token-budgeted context assembled by the
// curator and handed to the narrative synthesizer.
type CuratedContext struct {
	UserProfile     *UserProfile      `json:"user_profile"`
	DecisionContext string            `json:"decision_context"`
	Articles        []Article         `json:"articles"`
	Perception      *PerceptionBundle `json:"perception"`
	AnomalyAnalysis *AnomalyReport    `json:"anomaly_analysis"`
	Memory          []HistorySummary  `json:"memory"`
	Instructions    string            `json:"instructions"`
	TokenMetadata   TokenMetadata     `json:"_token_metadata"`
}
