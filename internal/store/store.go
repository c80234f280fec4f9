// Package store persists generated blog posts in a local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"blogsmith/internal/core"
)

// Store represents the SQLite-backed blog post store
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at dbPath
func NewStore(dbPath string) (*Store, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	postsTable := `
	CREATE TABLE IF NOT EXISTS blog_posts (
		id TEXT PRIMARY KEY,
		slug TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		excerpt TEXT NOT NULL,
		meta_title TEXT,
		meta_description TEXT,
		tags TEXT,
		reading_time INTEGER,
		featured_image TEXT,
		category TEXT,
		author TEXT,
		generated_by_ai BOOLEAN,
		ai_prompt TEXT,
		date_generated DATETIME,
		date_created DATETIME
	);`

	if _, err := s.db.Exec(postsTable); err != nil {
		return fmt.Errorf("failed to create blog_posts table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_posts_category ON blog_posts (category);",
		"CREATE INDEX IF NOT EXISTS idx_posts_date_created ON blog_posts (date_created);",
	}
	for _, idx := range indexes {
		if _, err := s.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL-safe slug from a post title
func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post"
	}
	return slug
}

// Create persists a draft and returns its id and slug. When the derived
// slug is already taken a millisecond timestamp suffix disambiguates it.
func (s *Store) Create(draft *core.PostDraft) (string, string, error) {
	slug := slugify(draft.Title)

	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM blog_posts WHERE slug = ?", slug).Scan(&exists)
	if err != nil {
		return "", "", fmt.Errorf("failed to check slug: %w", err)
	}
	if exists > 0 {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}

	tagsJSON, err := json.Marshal(draft.Tags)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO blog_posts (
			id, slug, title, content, excerpt, meta_title, meta_description,
			tags, reading_time, featured_image, category, author,
			generated_by_ai, ai_prompt, date_generated, date_created
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.ID, slug, draft.Title, draft.Content, draft.Excerpt,
		draft.MetaTitle, draft.MetaDescription, string(tagsJSON),
		draft.ReadingTime, draft.FeaturedImage, string(draft.Category),
		draft.Author, draft.GeneratedByAI, draft.AIPrompt,
		draft.DateGenerated, time.Now().UTC(),
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to insert blog post: %w", err)
	}

	return draft.ID, slug, nil
}

// CountAIPostsCreatedToday reports how many AI-generated posts were stored
// since local midnight.
func (s *Store) CountAIPostsCreatedToday() (int, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM blog_posts
		WHERE generated_by_ai = 1 AND date_created >= ?`,
		midnight.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count today's posts: %w", err)
	}

	return count, nil
}

// AllUsedPromptTexts returns the ai_prompt of every AI-generated post, used
// to rehydrate the topic selector across restarts.
func (s *Store) AllUsedPromptTexts() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT ai_prompt FROM blog_posts
		WHERE generated_by_ai = 1 AND ai_prompt != ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to query used prompts: %w", err)
	}
	defer rows.Close()

	var prompts []string
	for rows.Next() {
		var prompt string
		if err := rows.Scan(&prompt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, prompt)
	}

	return prompts, rows.Err()
}

// ListRecent returns the most recently created posts, newest first.
func (s *Store) ListRecent(limit int) ([]core.StoredPost, error) {
	rows, err := s.db.Query(`
		SELECT id, slug, title, category, generated_by_ai, date_created
		FROM blog_posts
		ORDER BY date_created DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []core.StoredPost
	for rows.Next() {
		var p core.StoredPost
		var category string
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &category, &p.GeneratedByAI, &p.DateCreated); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		p.Category = core.Category(category)
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
