package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/onsideagency/touchline/internal/fixtures"
)

func (s *Server) ListFixturesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "Missing playerID parameter", http.StatusBadRequest)
			return
		}
		list, err := s.Fixtures.GetFixtures(playerID)
		if err != nil {
			http.Error(w, "Failed to get fixtures", http.StatusInternalServerError)
			log.Error("Failed to get fixtures", "playerID", playerID, "error", err)
			return
		}
		writeJSON(w, list)
	}
}

type addFixturePayload struct {
	PlayerID string `json:"playerId" validate:"required"`
	// Line is a pasted one-liner like "12/03 vs Arsenal (H) 2-1 W". When set
	// the structured fields below are ignored and the line is parsed instead.
	Line string `json:"line"`

	FixtureDate  string `json:"fixture_date" validate:"omitempty,datetime=2006-01-02"`
	Opponent     string `json:"opponent"`
	Home         bool   `json:"home"`
	Competition  string `json:"competition"`
	GoalsFor     int    `json:"goals_for" validate:"gte=0"`
	GoalsAgainst int    `json:"goals_against" validate:"gte=0"`
	Result       string `json:"result" validate:"omitempty,oneof=W D L"`
}

func (s *Server) AddFixtureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addFixturePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var fixture *fixtures.Fixture
		if payload.Line != "" {
			parsed, err := fixtures.ParseLine(payload.PlayerID, payload.Line)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			fixture = parsed
		} else {
			if payload.Opponent == "" {
				http.Error(w, "Missing opponent field", http.StatusBadRequest)
				return
			}
			fixture = &fixtures.Fixture{
				ID:           uuid.NewString(),
				PlayerID:     payload.PlayerID,
				FixtureDate:  payload.FixtureDate,
				Opponent:     payload.Opponent,
				Home:         payload.Home,
				Competition:  payload.Competition,
				GoalsFor:     payload.GoalsFor,
				GoalsAgainst: payload.GoalsAgainst,
				Result:       fixtures.Result(payload.Result),
				CreatedAt:    time.Now().Unix(),
			}
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have added fixture", "playerID", fixture.PlayerID, "opponent", fixture.Opponent)
			writeJSON(w, fixture)
			return
		}

		if err := s.Fixtures.AddFixture(fixture); err != nil {
			http.Error(w, "Failed to add fixture", http.StatusInternalServerError)
			log.Error("Failed to add fixture", "playerID", fixture.PlayerID, "error", err)
			return
		}
		log.Info("Fixture added", "playerID", fixture.PlayerID, "opponent", fixture.Opponent)
		writeJSON(w, fixture)
	}
}

func (s *Server) DeleteFixtureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fixtureID := r.URL.Query().Get("fixtureID")
		if fixtureID == "" {
			http.Error(w, "Missing fixtureID parameter", http.StatusBadRequest)
			return
		}
		if err := s.Fixtures.DeleteFixture(fixtureID); err != nil {
			http.Error(w, "Failed to delete fixture", http.StatusInternalServerError)
			log.Error("Failed to delete fixture", "fixtureID", fixtureID, "error", err)
			return
		}
		fmt.Fprintf(w, "Deleted fixture %s", fixtureID)
	}
}

type extractFixturesPayload struct {
	PlayerID string `json:"playerId" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

func (s *Server) ExtractFixturesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload extractFixturesPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		extracted, err := s.Extractor.Extract(r.Context(), payload.PlayerID, payload.Text)
		if err != nil {
			http.Error(w, "Fixture extraction failed", http.StatusBadGateway)
			log.Error("Fixture extraction failed", "playerID", payload.PlayerID, "error", err)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have stored extracted fixtures", "playerID", payload.PlayerID, "count", len(extracted))
			writeJSON(w, extracted)
			return
		}

		for i := range extracted {
			if err := s.Fixtures.AddFixture(&extracted[i]); err != nil {
				http.Error(w, "Failed to store extracted fixtures", http.StatusInternalServerError)
				log.Error("Failed to store extracted fixture", "playerID", payload.PlayerID, "error", err)
				return
			}
		}
		log.Info("Fixtures extracted", "playerID", payload.PlayerID, "count", len(extracted))
		writeJSON(w, extracted)
	}
}
