package models

import "time"

// Article is a single ingested article, immutable within a synthesis run.
type Article struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	SourceName       string    `json:"source_name"`
	PublishedAt      time.Time `json:"published_at,omitempty"`
	HasPublishedAt   bool      `json:"-"`
	URL              string    `json:"url"`
	Content          string    `json:"content"`
	Entities         []string  `json:"entities,omitempty"`
	EmbeddingSummary string    `json:"embedding_summary,omitempty"`
}

// UserProfile personalizes curation and synthesis. A nil profile is
// tolerated by callers, which fall back to generic placeholders.
type UserProfile struct {
	Location            Location           `json:"location"`
	ProfessionalDomains  []string           `json:"professional_domains"`
	CivicInterests       []string           `json:"civic_interests"`
	PersonalPriorities   []string           `json:"personal_priorities"`
	ContentPreferences   ContentPreferences `json:"content_preferences"`
	PerspectiveID        string             `json:"perspective_id,omitempty"`
}

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type ContentPreferences struct {
	ExcludedTopics []string `json:"excluded_topics"`
}

// HistorySummary is one prior synthesis run's summary, used as historical
// memory in context curation.
type HistorySummary struct {
	Date    time.Time `json:"date"`
	Summary string    `json:"summary"`
}

// ContextModule is a decision-context document supplied by a collaborator.
type ContextModule struct {
	ModuleName      string   `json:"module_name"`
	Description     string   `json:"description"`
	Priority        string   `json:"priority"` // high, medium, low
	TokenEstimate   int      `json:"token_estimate"`
	ContentSections []string `json:"content_sections"`
	Type            string   `json:"type"` // domain_knowledge, supplemental, historical, core
}

// Perspective is a named analysis framework used to render curation
// instructions, parameterised by the user's profile.
type Perspective struct {
	Name              string `json:"name"`
	FrameworkTemplate string `json:"framework_template"`
	Tone              string `json:"tone"`
}

// PipelineFlags are the environment-controlled feature flags read once
// at pipeline construction (spec §6.2).
type PipelineFlags struct {
	EnableSemanticMemory    bool
	EnableReflection        bool
	EnableTrustVerification bool
	DailyReportEnabled      bool
}
