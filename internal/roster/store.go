package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/onsideagency/touchline/internal/highlights"
)

// New creates a new PlayerStore.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

// CreatePlayer inserts a new player. A missing id is generated.
func (s *store) CreatePlayer(player *PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	player.CreatedAt = now
	player.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO players (id, name, position, club, nationality, date_of_birth, squad_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, player.ID, player.Name, player.Position, player.Club, player.Nationality, player.DateOfBirth, player.SquadNumber, player.CreatedAt, player.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetPlayer fetches one player by id.
func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, position, club, nationality, date_of_birth, squad_number, created_at, updated_at
		FROM players WHERE id = ?
	`, playerID)
	return s.scanPlayer(row)
}

// ListPlayers returns the whole roster ordered by name.
func (s *store) ListPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, position, club, nationality, date_of_birth, squad_number, created_at, updated_at
		FROM players ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		player, err := s.scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}

// UpdatePlayer rewrites a player's profile fields. The highlights document
// is not touched here; it has its own versioned path.
func (s *store) UpdatePlayer(player *PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player.UpdatedAt = time.Now().Unix()
	res, err := s.db.Exec(`
		UPDATE players SET name = ?, position = ?, club = ?, nationality = ?, date_of_birth = ?, squad_number = ?, updated_at = ?
		WHERE id = ?
	`, player.Name, player.Position, player.Club, player.Nationality, player.DateOfBirth, player.SquadNumber, player.UpdatedAt, player.ID)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return s.requireRow(res, player.ID)
}

// DeletePlayer removes a player and, via foreign keys, their dependent rows.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return s.requireRow(res, playerID)
}

// Clear wipes the roster. Intended for admin/testing endpoints only.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM players"); err != nil {
		log.Error("Failed to clear players", "error", err)
	}
}

// HighlightsDoc reads the raw highlights document and its version.
func (s *store) HighlightsDoc(ctx context.Context, playerID string) ([]byte, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		doc     sql.NullString
		version int64
	)
	err := s.db.QueryRowContext(ctx, "SELECT highlights, highlights_version FROM players WHERE id = ?", playerID).Scan(&doc, &version)
	if err == sql.ErrNoRows {
		return nil, 0, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	if err != nil {
		return nil, 0, err
	}
	if !doc.Valid {
		return nil, version, nil
	}
	return []byte(doc.String), version, nil
}

// CompareAndSwapHighlights replaces the whole document iff the version still
// matches. The version bump makes concurrent read-modify-write cycles
// detectable instead of silently last-write-wins.
func (s *store) CompareAndSwapHighlights(ctx context.Context, playerID string, doc []byte, expected int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE players SET highlights = ?, highlights_version = highlights_version + 1, updated_at = ?
		WHERE id = ? AND highlights_version = ?
	`, string(doc), time.Now().Unix(), playerID, expected)
	if err != nil {
		return fmt.Errorf("failed to write highlights: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM players WHERE id = ?", playerID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
		}
		return fmt.Errorf("player %s: %w", playerID, highlights.ErrConflict)
	}
	return nil
}

func (s *store) requireRow(res sql.Result, playerID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	return nil
}

// scanPlayer is a helper to scan a single player row.
func (s *store) scanPlayer(scanner interface{ Scan(...any) error }) (*PlayerInfo, error) {
	var p PlayerInfo
	err := scanner.Scan(&p.ID, &p.Name, &p.Position, &p.Club, &p.Nationality, &p.DateOfBirth, &p.SquadNumber, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
