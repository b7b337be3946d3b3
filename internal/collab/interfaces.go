// Package collab defines the narrow interfaces through which the core
// pipeline consumes external collaborators (spec.md §6.1): article
// storage, user profiles, perspective catalogues, and decision-context
// modules. The core never imports a concrete adapter directly, only
// these interfaces, so storage/transport choices stay swappable.
package collab

import (
	"context"
	"time"

	"briefweaver/internal/models"
)

// ArticleFilters narrows recent_articles beyond the recency window.
type ArticleFilters struct {
	Topics []string
	Scope  string
}

// ArticleSource is the database-like collaborator for recent articles and
// historical synthesis summaries. The core never writes through it.
type ArticleSource interface {
	RecentArticles(ctx context.Context, since time.Time, filters ArticleFilters, limit int) ([]models.Article, error)
	HistorySummaries(ctx context.Context, limit int) ([]models.HistorySummary, error)
}

// ProfileSource loads the single user profile driving personalization.
// A nil profile (with ok=false) is tolerated by callers, which fall back
// to generic placeholders.
type ProfileSource interface {
	LoadProfile(ctx context.Context) (*models.UserProfile, bool, error)
}

// PerspectiveCatalogue resolves a named analysis framework by id.
type PerspectiveCatalogue interface {
	GetPerspective(ctx context.Context, id string) (*models.Perspective, error)
}

// ContextModuleSource lists decision-context modules, optionally filtered
// by type (domain_knowledge, supplemental, historical, core).
type ContextModuleSource interface {
	ContextModules(ctx context.Context, moduleType string) ([]models.ContextModule, error)
}
