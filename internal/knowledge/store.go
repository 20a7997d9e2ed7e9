package knowledge

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrArticleNotFound is returned when an article id does not exist.
var ErrArticleNotFound = errors.New("article not found")

// NewStore creates a new article store
func NewStore(db *sql.DB) ArticleStore {
	return &store{
		db: db,
	}
}

// AddArticle inserts an article. A missing id is generated.
func (s *store) AddArticle(article *Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	article.CreatedAt = now
	article.UpdatedAt = now

	tagsJSON, err := json.Marshal(article.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO knowledge_articles (id, title, category, body, tags_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.Title, article.Category, article.Body, tagsJSON, article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add article: %w", err)
	}
	return nil
}

// GetArticle fetches one article by id.
func (s *store) GetArticle(articleID string) (*Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, title, category, body, tags_json, created_at, updated_at
		FROM knowledge_articles WHERE id = ?
	`, articleID)
	return scanArticle(row)
}

// Search returns articles matching the query, newest first.
func (s *store) Search(query string) ([]Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		rows, err = s.db.Query(`
			SELECT id, title, category, body, tags_json, created_at, updated_at
			FROM knowledge_articles ORDER BY created_at DESC
		`)
	} else {
		like := "%" + query + "%"
		rows, err = s.db.Query(`
			SELECT id, title, category, body, tags_json, created_at, updated_at
			FROM knowledge_articles
			WHERE title LIKE ? OR body LIKE ? OR tags_json LIKE ?
			ORDER BY created_at DESC
		`, like, like, like)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			log.Error("Failed to scan article row", "error", err)
			continue
		}
		out = append(out, *article)
	}
	return out, rows.Err()
}

// DeleteArticle removes one article.
func (s *store) DeleteArticle(articleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM knowledge_articles WHERE id = ?", articleID)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("article %s: %w", articleID, ErrArticleNotFound)
	}
	return nil
}

func scanArticle(scanner interface{ Scan(...any) error }) (*Article, error) {
	var a Article
	var tagsJSON sql.NullString
	err := scanner.Scan(&a.ID, &a.Title, &a.Category, &a.Body, &tagsJSON, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	if tagsJSON.Valid {
		if err := json.Unmarshal([]byte(tagsJSON.String), &a.Tags); err != nil {
			log.Error("Failed to unmarshal tags", "articleID", a.ID, "error", err)
		}
	}
	return &a, nil
}
