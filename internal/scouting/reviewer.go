package scouting

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/events"
	"github.com/onsideagency/touchline/internal/textgen"
)

const reviewSystemPrompt = "You are a football scouting assistant. Given a scout's raw notes, " +
	"write a concise professional review of the player: two short paragraphs, no headings."

// Reviewer generates AI reviews for scouting reports.
type Reviewer struct {
	store   ReportStore
	textgen textgen.Client
	events  events.Publisher
}

// NewReviewer creates a new Reviewer.
func NewReviewer(store ReportStore, client textgen.Client, ev events.Publisher) *Reviewer {
	return &Reviewer{store: store, textgen: client, events: ev}
}

// GenerateReview produces a review for the report's raw notes, stores it on
// the report and returns it.
func (r *Reviewer) GenerateReview(ctx context.Context, reportID string) (string, error) {
	report, err := r.store.GetReport(reportID)
	if err != nil {
		return "", err
	}

	review, err := r.textgen.Generate(ctx, textgen.GenerateRequest{
		System: reviewSystemPrompt,
		Prompt: report.Body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate review for report %s: %w", reportID, err)
	}

	if err := r.store.SetReview(reportID, review); err != nil {
		return "", err
	}

	if err := r.events.SendMessage(events.EventScoutingReviewDone, events.ScoutingReviewDone{
		ReportID: reportID,
		PlayerID: report.PlayerID,
	}); err != nil {
		log.Error("Failed to publish scouting-review event", "error", err)
	}

	return review, nil
}
