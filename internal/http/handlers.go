package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/onsideagency/touchline/internal/roster"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if playerID := r.URL.Query().Get("playerID"); playerID != "" {
			player, err := s.Store.GetPlayer(playerID)
			if err != nil {
				if errors.Is(err, roster.ErrPlayerNotFound) {
					http.Error(w, "Player not found", http.StatusNotFound)
					return
				}
				http.Error(w, "Failed to get player", http.StatusInternalServerError)
				log.Error("Failed to get player from store", "playerID", playerID, "error", err)
				return
			}
			writeJSON(w, player)
			return
		}

		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, players)
	}
}

type playerPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Position    string `json:"position"`
	Club        string `json:"club"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	SquadNumber int    `json:"squad_number" validate:"gte=0,lte=99"`
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playerPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		now := time.Now().Unix()
		player := &roster.PlayerInfo{
			ID:          payload.ID,
			Name:        payload.Name,
			Position:    payload.Position,
			Club:        payload.Club,
			Nationality: payload.Nationality,
			DateOfBirth: payload.DateOfBirth,
			SquadNumber: payload.SquadNumber,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have created player", "name", player.Name)
			writeJSON(w, player)
			return
		}

		if err := s.Store.CreatePlayer(player); err != nil {
			http.Error(w, "Failed to create player", http.StatusInternalServerError)
			log.Error("Failed to create player", "name", player.Name, "error", err)
			return
		}
		log.Info("Player created", "playerID", player.ID, "name", player.Name)
		writeJSON(w, player)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playerPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if payload.ID == "" {
			http.Error(w, "Missing player id", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		player, err := s.Store.GetPlayer(payload.ID)
		if err != nil {
			if errors.Is(err, roster.ErrPlayerNotFound) {
				http.Error(w, "Player not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get player", http.StatusInternalServerError)
			log.Error("Failed to get player from store", "playerID", payload.ID, "error", err)
			return
		}

		player.Name = payload.Name
		player.Position = payload.Position
		player.Club = payload.Club
		player.Nationality = payload.Nationality
		player.DateOfBirth = payload.DateOfBirth
		player.SquadNumber = payload.SquadNumber
		player.UpdatedAt = time.Now().Unix()

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have updated player", "playerID", player.ID)
			writeJSON(w, player)
			return
		}

		if err := s.Store.UpdatePlayer(player); err != nil {
			http.Error(w, "Failed to update player", http.StatusInternalServerError)
			log.Error("Failed to update player", "playerID", player.ID, "error", err)
			return
		}
		log.Info("Player updated", "playerID", player.ID)
		writeJSON(w, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "Missing playerID parameter", http.StatusBadRequest)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have deleted player", "playerID", playerID)
			fmt.Fprintf(w, "Would have deleted player %s", playerID)
			return
		}

		if err := s.Store.DeletePlayer(playerID); err != nil {
			if errors.Is(err, roster.ErrPlayerNotFound) {
				http.Error(w, "Player not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to delete player", http.StatusInternalServerError)
			log.Error("Failed to delete player", "playerID", playerID, "error", err)
			return
		}
		log.Info("Player deleted", "playerID", playerID)
		fmt.Fprintf(w, "Deleted player %s", playerID)
	}
}
