package scouting

import (
	"database/sql"
	"sync"
)

// store handles database operations for scouting reports
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Kind distinguishes fixture-linked reports from general observations. It is
// an explicit tag rather than a nullable fixture id consumers have to sniff.
type Kind string

const (
	KindGeneral Kind = "general"
	KindFixture Kind = "fixture"
)

// Report is one scouting write-up on a player.
type Report struct {
	ID        string `json:"id"`
	PlayerID  string `json:"player_id"`
	ScoutName string `json:"scout_name"`
	Kind      Kind   `json:"kind"`
	// FixtureID is set only when Kind == KindFixture.
	FixtureID string `json:"fixture_id,omitempty"`
	Body      string `json:"body"`
	// Review is the AI-generated summary; empty until generated.
	Review    string `json:"review,omitempty"`
	CreatedAt int64  `json:"created_at"`
}
