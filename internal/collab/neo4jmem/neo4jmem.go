// Package neo4jmem is a reference ArticleSource/history-summary adapter
// backed by Neo4j, adapted from the teacher's internal/db package
// (retry-with-backoff connect, read-transaction helpers). It is a
// reference implementation of a collaborator, not core logic: nothing
// in internal/trust, internal/curator, or internal/synthesis imports
// this package directly, only the internal/collab interfaces.
package neo4jmem

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"

	"briefweaver/internal/collab"
	"briefweaver/internal/models"
)

// Store implements collab.ArticleSource against a Neo4j graph where
// articles are (:Article) nodes and prior syntheses are (:Synthesis)
// nodes ordered by their `date` property.
type Store struct {
	driver neo4j.Driver
}

// Open connects to uri with up to three attempts, matching the teacher's
// InitDB backoff (internal/db/neo4j.go).
func Open(uri, username, password string) (*Store, error) {
	var driver neo4j.Driver
	var err error
	const maxRetries = 3
	const retryDelay = 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		driver, err = neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""), func(c *neo4j.Config) {
			c.MaxConnectionLifetime = 30 * time.Minute
			c.MaxConnectionPoolSize = 50
			c.ConnectionAcquisitionTimeout = 5 * time.Second
		})
		if err != nil {
			log.Printf("neo4jmem: driver creation attempt %d/%d failed: %v", i+1, maxRetries, err)
			time.Sleep(retryDelay)
			continue
		}
		if err = driver.VerifyConnectivity(); err != nil {
			log.Printf("neo4jmem: connectivity attempt %d/%d failed: %v", i+1, maxRetries, err)
			time.Sleep(retryDelay)
			continue
		}
		return &Store{driver: driver}, nil
	}
	return nil, fmt.Errorf("neo4jmem: failed to connect after %d attempts: %w", maxRetries, err)
}

// Close releases the driver's connection pool.
func (s *Store) Close() error {
	return s.driver.Close()
}

// RecentArticles implements collab.ArticleSource.
func (s *Store) RecentArticles(ctx context.Context, since time.Time, filters collab.ArticleFilters, limit int) ([]models.Article, error) {
	session := s.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(`
			MATCH (a:Article)
			WHERE a.publishedAt >= datetime($since)
			RETURN a.id AS id, a.title AS title, a.sourceName AS sourceName,
			       a.publishedAt AS publishedAt, a.url AS url, a.content AS content
			ORDER BY a.publishedAt DESC
			LIMIT $limit`,
			map[string]interface{}{"since": since.Format(time.RFC3339), "limit": limit})
		if err != nil {
			return nil, fmt.Errorf("query recent articles: %w", err)
		}

		var articles []models.Article
		for res.Next() {
			rec := res.Record()
			a := models.Article{}
			if v, ok := rec.Get("id"); ok {
				a.ID, _ = v.(string)
			}
			if v, ok := rec.Get("title"); ok {
				a.Title, _ = v.(string)
			}
			if v, ok := rec.Get("sourceName"); ok {
				a.SourceName, _ = v.(string)
			}
			if v, ok := rec.Get("url"); ok {
				a.URL, _ = v.(string)
			}
			if v, ok := rec.Get("content"); ok {
				a.Content, _ = v.(string)
			}
			if v, ok := rec.Get("publishedAt"); ok {
				if t, ok := v.(time.Time); ok {
					a.PublishedAt = t
					a.HasPublishedAt = true
				}
			}
			articles = append(articles, a)
		}
		return articles, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Article), nil
}

// HistorySummaries implements collab.ArticleSource.
func (s *Store) HistorySummaries(ctx context.Context, limit int) ([]models.HistorySummary, error) {
	session := s.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(`
			MATCH (s:Synthesis)
			RETURN s.date AS date, s.summary AS summary
			ORDER BY s.date DESC
			LIMIT $limit`,
			map[string]interface{}{"limit": limit})
		if err != nil {
			return nil, fmt.Errorf("query history summaries: %w", err)
		}

		var summaries []models.HistorySummary
		for res.Next() {
			rec := res.Record()
			h := models.HistorySummary{}
			if v, ok := rec.Get("summary"); ok {
				h.Summary, _ = v.(string)
			}
			if v, ok := rec.Get("date"); ok {
				if t, ok := v.(time.Time); ok {
					h.Date = t
				}
			}
			summaries = append(summaries, h)
		}
		return summaries, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.HistorySummary), nil
}
