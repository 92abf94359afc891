package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// ContentCache caches raw fetched source content keyed by URL, so repeated
// runs within the TTL don't hammer the upstream servers. Disabled by default
// at the engine level to keep output a pure function of the live sources.
type ContentCache struct {
	db  *Database
	ttl time.Duration
}

// NewContentCache creates a content cache backed by the given database
func NewContentCache(db *Database, ttl time.Duration) (*ContentCache, error) {
	cache := &ContentCache{db: db, ttl: ttl}
	if err := cache.initialize(); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *ContentCache) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS fetch_cache (
			url TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_fetch_cache_expires ON fetch_cache(expires_at);
	`
	return c.db.ExecuteSchema(schema)
}

// Get retrieves cached content for a URL. The second return value is false
// when no unexpired entry exists.
func (c *ContentCache) Get(url string) (string, bool, error) {
	query := `
		SELECT content FROM fetch_cache
		WHERE url = ? AND expires_at > CURRENT_TIMESTAMP
	`

	var content string
	err := c.db.DB().QueryRow(query, url).Scan(&content)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cached content: %w", err)
	}

	return content, true, nil
}

// Set stores fetched content for a URL
func (c *ContentCache) Set(url, content string) error {
	expiresAt := time.Now().Add(c.ttl)

	query := `
		INSERT OR REPLACE INTO fetch_cache (url, content, expires_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`

	if _, err := c.db.DB().Exec(query, url, content, expiresAt); err != nil {
		return fmt.Errorf("failed to cache content: %w", err)
	}

	return nil
}

// CleanupExpired removes expired entries from the cache
func (c *ContentCache) CleanupExpired() error {
	result, err := c.db.DB().Exec(`DELETE FROM fetch_cache WHERE expires_at < CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired entries: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		slog.Debug("Cleaned up expired cache entries", "count", rowsAffected)
	}

	return nil
}

// Clear removes all entries from the cache
func (c *ContentCache) Clear() error {
	if _, err := c.db.DB().Exec(`DELETE FROM fetch_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
