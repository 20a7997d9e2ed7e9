package knowledge

import (
	"database/sql"
	"sync"
)

// store handles database operations for the coaching knowledge base
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Article is one entry in the coaching knowledge base.
type Article struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}
