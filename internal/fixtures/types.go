package fixtures

import (
	"database/sql"
	"sync"
)

// store handles database operations for player fixtures
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Result is the outcome of a fixture from the player's perspective.
type Result string

const (
	ResultWin     Result = "W"
	ResultDraw    Result = "D"
	ResultLoss    Result = "L"
	ResultUnknown Result = ""
)

// Fixture is one past or upcoming match on a player's record.
type Fixture struct {
	ID           string `json:"id"`
	PlayerID     string `json:"player_id"`
	FixtureDate  string `json:"fixture_date"`
	Opponent     string `json:"opponent"`
	Home         bool   `json:"home"`
	Competition  string `json:"competition"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Result       Result `json:"result"`
	// SourceLine keeps the raw text the fixture was parsed from, so a bad
	// inference can be audited and re-parsed later.
	SourceLine string `json:"source_line,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}
