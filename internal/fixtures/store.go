package fixtures

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewStore creates a new fixture store
func NewStore(db *sql.DB) FixtureStore {
	return &store{
		db: db,
	}
}

// AddFixture inserts a fixture for a player. A missing id is generated.
func (s *store) AddFixture(fixture *Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fixture.ID == "" {
		fixture.ID = uuid.New().String()
	}
	fixture.CreatedAt = time.Now().Unix()

	_, err := s.db.Exec(`
		INSERT INTO player_fixtures (id, player_id, fixture_date, opponent, home, competition, goals_for, goals_against, result, source_line, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		fixture.ID,
		fixture.PlayerID,
		fixture.FixtureDate,
		fixture.Opponent,
		fixture.Home,
		fixture.Competition,
		fixture.GoalsFor,
		fixture.GoalsAgainst,
		string(fixture.Result),
		fixture.SourceLine,
		fixture.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add fixture: %w", err)
	}
	return nil
}

// GetFixtures returns a player's fixtures, most recent date first.
func (s *store) GetFixtures(playerID string) ([]Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player_id, fixture_date, opponent, home, competition, goals_for, goals_against, result, source_line, created_at
		FROM player_fixtures WHERE player_id = ?
		ORDER BY fixture_date DESC, created_at DESC
	`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Fixture
	for rows.Next() {
		var f Fixture
		var result string
		err := rows.Scan(&f.ID, &f.PlayerID, &f.FixtureDate, &f.Opponent, &f.Home, &f.Competition, &f.GoalsFor, &f.GoalsAgainst, &result, &f.SourceLine, &f.CreatedAt)
		if err != nil {
			log.Error("Failed to scan fixture row", "error", err)
			continue
		}
		f.Result = Result(result)
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteFixture removes one fixture.
func (s *store) DeleteFixture(fixtureID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM player_fixtures WHERE id = ?", fixtureID)
	if err != nil {
		return fmt.Errorf("failed to delete fixture: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("fixture %s not found", fixtureID)
	}
	return nil
}
