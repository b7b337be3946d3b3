// Package sources implements the authoritative-source registry (spec.md
// §4.3): a declarative catalogue of trusted web resources, matched to a
// claim either by keyword scoring or, when that fails, by an LLM-mediated
// pass over the catalogue.
package sources

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// Registry is read-only after load; reloading is cheap and permitted
// (spec.md §3 "Authoritative source registry is loaded once per process").
type Registry struct {
	sources  []models.AuthoritativeSource
	fallback models.FallbackDescriptor
}

// Load reads a declarative YAML document from path.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source catalogue: %w", err)
	}
	defer f.Close()

	var cat models.SourceCatalogue
	if err := yaml.NewDecoder(f).Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode source catalogue: %w", err)
	}
	return &Registry{sources: cat.Sources, fallback: cat.Fallback}, nil
}

// NewRegistry builds a registry directly from an already-loaded catalogue,
// useful for tests and for embedding a default catalogue in the binary.
func NewRegistry(cat models.SourceCatalogue) *Registry {
	return &Registry{sources: cat.Sources, fallback: cat.Fallback}
}

// Fallback returns the descriptor to attach when no source matches.
func (r *Registry) Fallback() models.FallbackDescriptor {
	return r.fallback
}

// Empty reports whether the registry has no sources loaded (spec.md §8:
// "When the registry is empty, find_source returns None without calling
// the LLM").
func (r *Registry) Empty() bool {
	return len(r.sources) == 0
}

// keywordScoreThreshold is the minimum positive score required for a
// keyword match to be accepted.
const keywordScoreThreshold = 0

// FindByKeyword scores each source by the number of its keywords present
// (case-insensitive substring) in the claim text, with a bonus when ALL of
// a source's keywords match, and returns the highest-scoring source above
// the threshold (spec.md §4.3 "Keyword sync").
func (r *Registry) FindByKeyword(claimText string) (*models.AuthoritativeSource, int) {
	lower := strings.ToLower(claimText)

	var best *models.AuthoritativeSource
	bestScore := keywordScoreThreshold

	for i := range r.sources {
		src := &r.sources[i]
		if len(src.Keywords) == 0 {
			continue
		}
		score := 0
		allMatch := true
		for _, kw := range src.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score++
			} else {
				allMatch = false
			}
		}
		if allMatch {
			score += len(src.Keywords)
		}
		if score > bestScore {
			bestScore = score
			best = src
		}
	}

	return best, bestScore
}

type llmMatchResponse struct {
	BestMatchID int     `json:"best_match_id"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

// FindByLLM presents the catalogue to the gateway and asks it to pick the
// best match, favoring geographic specificity (spec.md §4.3
// "LLM-mediated async"). Returns nil when the registry is empty, without
// calling the gateway, and nil when the model declines to match or returns
// an out-of-range id.
func (r *Registry) FindByLLM(ctx context.Context, gw llmgw.Gateway, claimText string) (*models.AuthoritativeSource, float64, string) {
	if r.Empty() {
		return nil, 0, ""
	}

	var b strings.Builder
	for i, src := range r.sources {
		fmt.Fprintf(&b, "%d: %s (keywords: %s)\n", i, src.Name, strings.Join(src.Keywords, ", "))
	}

	userMsg := fmt.Sprintf("Claim: %q\n\nCatalogue:\n%s", claimText, b.String())
	raw, err := gw.Analyze(ctx, promptlib.SourceMatchSystem, userMsg, 0.0, 400)
	if err != nil {
		return nil, 0, ""
	}

	resp, ok := llmgw.TryDecodeJSON[llmMatchResponse](raw)
	if !ok {
		return nil, 0, ""
	}
	if resp.BestMatchID < 0 || resp.BestMatchID >= len(r.sources) {
		return nil, 0, ""
	}

	return &r.sources[resp.BestMatchID], resp.Confidence, resp.Reasoning
}

type countryExtraction struct {
	Country        string `json:"country"`
	SlugHyphen     string `json:"slug_hyphen"`
	SlugUnderscore string `json:"slug_underscore"`
}

// ResolveURL returns the concrete URL to fetch for a matched source. When
// the source requires country extraction, it asks the gateway for the
// country and its slug forms and substitutes them into the URL template,
// using the underscore form for Wikipedia-style templates and the hyphen
// form otherwise (spec.md §4.3). On any extraction failure it returns
// ("", false).
func (r *Registry) ResolveURL(ctx context.Context, gw llmgw.Gateway, src models.AuthoritativeSource, claimText string) (string, bool) {
	if !src.RequiresCountryExtraction {
		if src.URL != "" {
			return src.URL, true
		}
		return "", false
	}

	raw, err := gw.Analyze(ctx, promptlib.CountryExtractionSystem, fmt.Sprintf("Claim: %q", claimText), 0.0, 200)
	if err != nil {
		return "", false
	}
	extracted, ok := llmgw.TryDecodeJSON[countryExtraction](raw)
	if !ok || extracted.Country == "" {
		return "", false
	}

	slug := extracted.SlugHyphen
	if isWikipediaTemplate(src.URLTemplate) {
		slug = extracted.SlugUnderscore
	}
	if slug == "" {
		return "", false
	}

	resolved := strings.ReplaceAll(src.URLTemplate, "{country}", slug)
	if resolved == src.URLTemplate {
		return "", false
	}
	return resolved, true
}

func isWikipediaTemplate(tmpl string) bool {
	return strings.Contains(strings.ToLower(tmpl), "wikipedia.org")
}
