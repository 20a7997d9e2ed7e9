package analysis

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewStore creates a new report store
func NewStore(db *sql.DB) ReportStore {
	return &store{
		db: db,
	}
}

// AddReport inserts a performance report. A missing id is generated.
func (s *store) AddReport(report *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.CreatedAt = time.Now().Unix()

	strengthsJSON, err := json.Marshal(report.Strengths)
	if err != nil {
		return err
	}
	weaknessesJSON, err := json.Marshal(report.Weaknesses)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO player_analysis (id, player_id, title, report_date, summary, strengths_json, weaknesses_json, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.PlayerID, report.Title, report.ReportDate, report.Summary, strengthsJSON, weaknessesJSON, report.Rating, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add report: %w", err)
	}
	return nil
}

// GetReports returns a player's performance reports, newest first.
func (s *store) GetReports(playerID string) ([]Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player_id, title, report_date, summary, strengths_json, weaknesses_json, rating, created_at
		FROM player_analysis WHERE player_id = ?
		ORDER BY created_at DESC
	`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var r Report
		var strengthsJSON, weaknessesJSON sql.NullString
		err := rows.Scan(&r.ID, &r.PlayerID, &r.Title, &r.ReportDate, &r.Summary, &strengthsJSON, &weaknessesJSON, &r.Rating, &r.CreatedAt)
		if err != nil {
			log.Error("Failed to scan report row", "error", err)
			continue
		}
		if strengthsJSON.Valid {
			if err := json.Unmarshal([]byte(strengthsJSON.String), &r.Strengths); err != nil {
				log.Error("Failed to unmarshal strengths", "reportID", r.ID, "error", err)
			}
		}
		if weaknessesJSON.Valid {
			if err := json.Unmarshal([]byte(weaknessesJSON.String), &r.Weaknesses); err != nil {
				log.Error("Failed to unmarshal weaknesses", "reportID", r.ID, "error", err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteReport removes one report.
func (s *store) DeleteReport(reportID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM player_analysis WHERE id = ?", reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("report %s not found", reportID)
	}
	return nil
}
