package analysis

import (
	"database/sql"
	"sync"
)

// store handles database operations for performance reports
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Report is one performance-analysis write-up for a player.
type Report struct {
	ID         string   `json:"id"`
	PlayerID   string   `json:"player_id"`
	Title      string   `json:"title"`
	ReportDate string   `json:"report_date"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Rating     float64  `json:"rating"`
	CreatedAt  int64    `json:"created_at"`
}
