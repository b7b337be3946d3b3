package models

// AuthoritativeSource is one entry in the authoritative-source registry:
// a curated web resource catalogued with keywords, a URL (or template),
// and a natural-language extraction prompt.
type AuthoritativeSource struct {
	Name                    string `yaml:"name" json:"name"`
	Keywords                []string `yaml:"keywords" json:"keywords"`
	URL                     string `yaml:"url,omitempty" json:"url,omitempty"`
	URLTemplate             string `yaml:"url_template,omitempty" json:"url_template,omitempty"`
	RequiresCountryExtraction bool `yaml:"requires_country_extraction" json:"requires_country_extraction"`
	QueryPrompt             string `yaml:"query_prompt" json:"query_prompt"`
	RequiresJS              bool   `yaml:"requires_js" json:"requires_js"`
}

// FallbackDescriptor describes what to do when no source matches.
type FallbackDescriptor struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Reason  string `yaml:"reason" json:"reason"`
}

// SourceCatalogue is the declarative document loaded by the registry.
type SourceCatalogue struct {
	Sources  []AuthoritativeSource `yaml:"sources" json:"sources"`
	Fallback FallbackDescriptor    `yaml:"fallback" json:"fallback"`
}

// SourceMatch is the result of a successful keyword or LLM-mediated match.
type SourceMatch struct {
	Source     AuthoritativeSource `json:"source"`
	Confidence float64             `json:"confidence"`
	Reasoning  string              `json:"reasoning"`
	ResolvedURL string             `json:"resolved_url"`
}
