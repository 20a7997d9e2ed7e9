package scouting

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrReportNotFound is returned when a report id does not exist.
var ErrReportNotFound = errors.New("scouting report not found")

// NewStore creates a new scouting report store
func NewStore(db *sql.DB) ReportStore {
	return &store{
		db: db,
	}
}

// AddReport inserts a scouting report. A missing id is generated and the
// kind defaults to general when no fixture is linked.
func (s *store) AddReport(report *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.Kind == "" {
		report.Kind = KindGeneral
	}
	if report.Kind == KindGeneral {
		report.FixtureID = ""
	}
	report.CreatedAt = time.Now().Unix()

	var fixtureID any
	if report.Kind == KindFixture {
		if report.FixtureID == "" {
			return fmt.Errorf("fixture-linked report requires a fixture id")
		}
		fixtureID = report.FixtureID
	}

	_, err := s.db.Exec(`
		INSERT INTO scouting_reports (id, player_id, scout_name, kind, fixture_id, body, review, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.PlayerID, report.ScoutName, string(report.Kind), fixtureID, report.Body, report.Review, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add scouting report: %w", err)
	}
	return nil
}

// GetReport fetches one report by id.
func (s *store) GetReport(reportID string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, player_id, scout_name, kind, fixture_id, body, review, created_at
		FROM scouting_reports WHERE id = ?
	`, reportID)
	return scanReport(row)
}

// GetReports returns a player's scouting reports, newest first.
func (s *store) GetReports(playerID string) ([]Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player_id, scout_name, kind, fixture_id, body, review, created_at
		FROM scouting_reports WHERE player_id = ?
		ORDER BY created_at DESC
	`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			log.Error("Failed to scan scouting report row", "error", err)
			continue
		}
		out = append(out, *report)
	}
	return out, rows.Err()
}

// SetReview stores the generated review text on a report.
func (s *store) SetReview(reportID, review string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE scouting_reports SET review = ? WHERE id = ?", review, reportID)
	if err != nil {
		return fmt.Errorf("failed to set review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("report %s: %w", reportID, ErrReportNotFound)
	}
	return nil
}

// DeleteReport removes one report.
func (s *store) DeleteReport(reportID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM scouting_reports WHERE id = ?", reportID)
	if err != nil {
		return fmt.Errorf("failed to delete scouting report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("report %s: %w", reportID, ErrReportNotFound)
	}
	return nil
}

func scanReport(scanner interface{ Scan(...any) error }) (*Report, error) {
	var r Report
	var kind string
	var fixtureID sql.NullString
	err := scanner.Scan(&r.ID, &r.PlayerID, &r.ScoutName, &kind, &fixtureID, &r.Body, &r.Review, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Kind = Kind(kind)
	if fixtureID.Valid {
		r.FixtureID = fixtureID.String
	}
	return &r, nil
}
