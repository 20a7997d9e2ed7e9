package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/events"
	"github.com/onsideagency/touchline/internal/scouting"
)

// pushEnvelope is the wrapper Pub/Sub wraps around a push-delivered message.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"` // base64-encoded message payload
	} `json:"message"`
}

func readPushPayload(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var envelope pushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(envelope.Message.Data)
}

// ScoutingReviewDoneHandler is the push target for the scouting-review-done
// topic. It delivers the finished review to Slack, so notification happens
// off the request path that generated it.
func (s *Server) ScoutingReviewDoneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := readPushPayload(r)
		if err != nil {
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			log.Error("Failed to decode push message", "error", err)
			return
		}

		var done events.ScoutingReviewDone
		if err := s.Events.ProcessMessage(rawData, &done); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}

		report, err := s.Scouting.GetReport(done.ReportID)
		if err != nil {
			if errors.Is(err, scouting.ErrReportNotFound) {
				http.Error(w, "Report not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get report", http.StatusInternalServerError)
			log.Error("Failed to get scouting report", "reportID", done.ReportID, "error", err)
			return
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendScoutingReview(done.PlayerID, done.ReportID, report.Review, isDryRun); err != nil {
			log.Error("Failed to send scouting-review notification", "reportID", done.ReportID, "error", err)
		}
		w.Write([]byte("OK"))
	}
}
