package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/onsideagency/touchline/internal/analysis"
	"github.com/onsideagency/touchline/internal/knowledge"
	"github.com/onsideagency/touchline/internal/scouting"
)

func (s *Server) ListAnalysisHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "Missing playerID parameter", http.StatusBadRequest)
			return
		}
		reports, err := s.Analysis.GetReports(playerID)
		if err != nil {
			http.Error(w, "Failed to get reports", http.StatusInternalServerError)
			log.Error("Failed to get analysis reports", "playerID", playerID, "error", err)
			return
		}
		writeJSON(w, reports)
	}
}

type addAnalysisPayload struct {
	PlayerID   string   `json:"playerId" validate:"required"`
	Title      string   `json:"title" validate:"required"`
	ReportDate string   `json:"report_date" validate:"omitempty,datetime=2006-01-02"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Rating     float64  `json:"rating" validate:"gte=0,lte=10"`
}

func (s *Server) AddAnalysisHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addAnalysisPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report := &analysis.Report{
			ID:         uuid.NewString(),
			PlayerID:   payload.PlayerID,
			Title:      payload.Title,
			ReportDate: payload.ReportDate,
			Summary:    payload.Summary,
			Strengths:  payload.Strengths,
			Weaknesses: payload.Weaknesses,
			Rating:     payload.Rating,
			CreatedAt:  time.Now().Unix(),
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have added analysis report", "playerID", report.PlayerID, "title", report.Title)
			writeJSON(w, report)
			return
		}

		if err := s.Analysis.AddReport(report); err != nil {
			http.Error(w, "Failed to add report", http.StatusInternalServerError)
			log.Error("Failed to add analysis report", "playerID", report.PlayerID, "error", err)
			return
		}
		log.Info("Analysis report added", "playerID", report.PlayerID, "title", report.Title)
		writeJSON(w, report)
	}
}

func (s *Server) DeleteAnalysisHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID := r.URL.Query().Get("reportID")
		if reportID == "" {
			http.Error(w, "Missing reportID parameter", http.StatusBadRequest)
			return
		}
		if err := s.Analysis.DeleteReport(reportID); err != nil {
			http.Error(w, "Failed to delete report", http.StatusInternalServerError)
			log.Error("Failed to delete analysis report", "reportID", reportID, "error", err)
			return
		}
		fmt.Fprintf(w, "Deleted report %s", reportID)
	}
}

func (s *Server) ListScoutingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "Missing playerID parameter", http.StatusBadRequest)
			return
		}
		reports, err := s.Scouting.GetReports(playerID)
		if err != nil {
			http.Error(w, "Failed to get reports", http.StatusInternalServerError)
			log.Error("Failed to get scouting reports", "playerID", playerID, "error", err)
			return
		}
		writeJSON(w, reports)
	}
}

type addScoutingPayload struct {
	PlayerID  string `json:"playerId" validate:"required"`
	ScoutName string `json:"scout_name" validate:"required"`
	Kind      string `json:"kind" validate:"required,oneof=general fixture"`
	FixtureID string `json:"fixture_id" validate:"required_if=Kind fixture,excluded_if=Kind general"`
	Body      string `json:"body" validate:"required"`
}

func (s *Server) AddScoutingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addScoutingPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report := &scouting.Report{
			ID:        uuid.NewString(),
			PlayerID:  payload.PlayerID,
			ScoutName: payload.ScoutName,
			Kind:      scouting.Kind(payload.Kind),
			FixtureID: payload.FixtureID,
			Body:      payload.Body,
			CreatedAt: time.Now().Unix(),
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have added scouting report", "playerID", report.PlayerID, "scout", report.ScoutName)
			writeJSON(w, report)
			return
		}

		if err := s.Scouting.AddReport(report); err != nil {
			http.Error(w, "Failed to add report", http.StatusInternalServerError)
			log.Error("Failed to add scouting report", "playerID", report.PlayerID, "error", err)
			return
		}
		log.Info("Scouting report added", "playerID", report.PlayerID, "kind", report.Kind)
		writeJSON(w, report)
	}
}

func (s *Server) ReviewScoutingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID := r.URL.Query().Get("reportID")
		if reportID == "" {
			http.Error(w, "Missing reportID parameter", http.StatusBadRequest)
			return
		}

		report, err := s.Scouting.GetReport(reportID)
		if err != nil {
			if errors.Is(err, scouting.ErrReportNotFound) {
				http.Error(w, "Report not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get report", http.StatusInternalServerError)
			log.Error("Failed to get scouting report", "reportID", reportID, "error", err)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have generated scouting review", "reportID", reportID, "playerID", report.PlayerID)
			writeJSON(w, map[string]string{"reportId": reportID, "review": ""})
			return
		}

		review, err := s.Reviewer.GenerateReview(r.Context(), reportID)
		if err != nil {
			http.Error(w, "Failed to generate review", http.StatusBadGateway)
			log.Error("Failed to generate scouting review", "reportID", reportID, "error", err)
			return
		}

		writeJSON(w, map[string]string{"reportId": reportID, "review": review})
	}
}

func (s *Server) ListKnowledgeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articles, err := s.Knowledge.Search(r.URL.Query().Get("q"))
		if err != nil {
			http.Error(w, "Failed to search articles", http.StatusInternalServerError)
			log.Error("Failed to search knowledge base", "error", err)
			return
		}
		writeJSON(w, articles)
	}
}

type addKnowledgePayload struct {
	Title    string   `json:"title" validate:"required"`
	Category string   `json:"category"`
	Body     string   `json:"body" validate:"required"`
	Tags     []string `json:"tags"`
}

func (s *Server) AddKnowledgeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addKnowledgePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		now := time.Now().Unix()
		article := &knowledge.Article{
			ID:        uuid.NewString(),
			Title:     payload.Title,
			Category:  payload.Category,
			Body:      payload.Body,
			Tags:      payload.Tags,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.Knowledge.AddArticle(article); err != nil {
			http.Error(w, "Failed to add article", http.StatusInternalServerError)
			log.Error("Failed to add knowledge article", "title", article.Title, "error", err)
			return
		}
		log.Info("Knowledge article added", "title", article.Title)
		writeJSON(w, article)
	}
}

func (s *Server) DeleteKnowledgeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articleID := r.URL.Query().Get("articleID")
		if articleID == "" {
			http.Error(w, "Missing articleID parameter", http.StatusBadRequest)
			return
		}
		if err := s.Knowledge.DeleteArticle(articleID); err != nil {
			http.Error(w, "Failed to delete article", http.StatusInternalServerError)
			log.Error("Failed to delete knowledge article", "articleID", articleID, "error", err)
			return
		}
		fmt.Fprintf(w, "Deleted article %s", articleID)
	}
}
