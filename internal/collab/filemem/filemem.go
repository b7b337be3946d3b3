// Package filemem is a JSON-file-backed reference implementation of the
// internal/collab interfaces, used by cmd/briefcli's zero-dependency
// path so the system is runnable standalone without a graph database.
package filemem

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"briefweaver/internal/collab"
	"briefweaver/internal/models"
)

// Store reads articles, history summaries, a profile, perspectives, and
// context modules from a directory of JSON files:
//
//	<dir>/articles.json          []models.Article
//	<dir>/history.json           []models.HistorySummary
//	<dir>/profile.json           models.UserProfile
//	<dir>/perspectives.json      map[string]models.Perspective
//	<dir>/context_modules/*.json models.ContextModule, one per file
type Store struct {
	dir string
}

// New builds a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

var _ collab.ArticleSource = (*Store)(nil)
var _ collab.ProfileSource = (*Store)(nil)
var _ collab.PerspectiveCatalogue = (*Store)(nil)
var _ collab.ContextModuleSource = (*Store)(nil)

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// RecentArticles implements collab.ArticleSource.
func (s *Store) RecentArticles(ctx context.Context, since time.Time, filters collab.ArticleFilters, limit int) ([]models.Article, error) {
	var all []models.Article
	if err := readJSON(filepath.Join(s.dir, "articles.json"), &all); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var filtered []models.Article
	for _, a := range all {
		a.HasPublishedAt = !a.PublishedAt.IsZero()
		if a.HasPublishedAt && a.PublishedAt.Before(since) {
			continue
		}
		if len(filters.Topics) > 0 && !matchesAnyTopic(a, filters.Topics) {
			continue
		}
		filtered = append(filtered, a)
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].PublishedAt.After(filtered[j].PublishedAt) })
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func matchesAnyTopic(a models.Article, topics []string) bool {
	for _, t := range topics {
		for _, e := range a.Entities {
			if e == t {
				return true
			}
		}
	}
	return false
}

// HistorySummaries implements collab.ArticleSource.
func (s *Store) HistorySummaries(ctx context.Context, limit int) ([]models.HistorySummary, error) {
	var all []models.HistorySummary
	if err := readJSON(filepath.Join(s.dir, "history.json"), &all); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// LoadProfile implements collab.ProfileSource.
func (s *Store) LoadProfile(ctx context.Context) (*models.UserProfile, bool, error) {
	var profile models.UserProfile
	err := readJSON(filepath.Join(s.dir, "profile.json"), &profile)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &profile, true, nil
}

// GetPerspective implements collab.PerspectiveCatalogue.
func (s *Store) GetPerspective(ctx context.Context, id string) (*models.Perspective, error) {
	var catalogue map[string]models.Perspective
	if err := readJSON(filepath.Join(s.dir, "perspectives.json"), &catalogue); err != nil {
		return nil, err
	}
	p, ok := catalogue[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ContextModules implements collab.ContextModuleSource.
func (s *Store) ContextModules(ctx context.Context, moduleType string) ([]models.ContextModule, error) {
	modDir := filepath.Join(s.dir, "context_modules")
	entries, err := os.ReadDir(modDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var modules []models.ContextModule
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		var m models.ContextModule
		if err := readJSON(filepath.Join(modDir, e.Name()), &m); err != nil {
			continue
		}
		if moduleType == "" || m.Type == moduleType {
			modules = append(modules, m)
		}
	}
	return modules, nil
}
