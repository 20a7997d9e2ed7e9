package scouting_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/onsideagency/touchline/internal/database"
	"github.com/onsideagency/touchline/internal/events"
	"github.com/onsideagency/touchline/internal/fixtures"
	"github.com/onsideagency/touchline/internal/roster"
	"github.com/onsideagency/touchline/internal/scouting"
	"github.com/onsideagency/touchline/internal/textgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (scouting.ReportStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return scouting.NewStore(db), db, dbTeardown
}

func seedPlayer(t *testing.T, db *sql.DB, playerID string) {
	t.Helper()
	players := roster.New(db)
	require.NoError(t, players.CreatePlayer(&roster.PlayerInfo{ID: playerID, Name: "Seed " + playerID}))
}

func TestAddAndGetReport(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedPlayer(t, db, "p1")

	report := &scouting.Report{
		PlayerID:  "p1",
		ScoutName: "R. Vine",
		Body:      "Sharp movement in the channels.",
	}
	require.NoError(t, store.AddReport(report))
	assert.NotEmpty(t, report.ID)
	// Kind defaults to general when no fixture is linked.
	assert.Equal(t, scouting.KindGeneral, report.Kind)

	got, err := store.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, "R. Vine", got.ScoutName)
	assert.Equal(t, scouting.KindGeneral, got.Kind)
	assert.Empty(t, got.FixtureID)

	_, err = store.GetReport("missing")
	assert.ErrorIs(t, err, scouting.ErrReportNotFound)
}

func TestFixtureLinkedReport(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedPlayer(t, db, "p1")

	fixtureStore := fixtures.NewStore(db)
	fixture := &fixtures.Fixture{PlayerID: "p1", Opponent: "Arsenal"}
	require.NoError(t, fixtureStore.AddFixture(fixture))

	report := &scouting.Report{
		PlayerID:  "p1",
		ScoutName: "R. Vine",
		Kind:      scouting.KindFixture,
		FixtureID: fixture.ID,
		Body:      "Dominated the left side all game.",
	}
	require.NoError(t, store.AddReport(report))

	got, err := store.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, scouting.KindFixture, got.Kind)
	assert.Equal(t, fixture.ID, got.FixtureID)

	// A fixture-kind report without a fixture is refused.
	err = store.AddReport(&scouting.Report{PlayerID: "p1", Kind: scouting.KindFixture, Body: "x"})
	assert.Error(t, err)
}

func TestSetReviewAndDelete(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedPlayer(t, db, "p1")

	report := &scouting.Report{PlayerID: "p1", ScoutName: "S", Body: "notes"}
	require.NoError(t, store.AddReport(report))

	require.NoError(t, store.SetReview(report.ID, "A tidy review."))
	got, err := store.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, "A tidy review.", got.Review)

	assert.ErrorIs(t, store.SetReview("missing", "x"), scouting.ErrReportNotFound)

	require.NoError(t, store.DeleteReport(report.ID))
	assert.ErrorIs(t, store.DeleteReport(report.ID), scouting.ErrReportNotFound)
}

func TestReviewerGeneratesStoresAndPublishes(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedPlayer(t, db, "p1")

	report := &scouting.Report{PlayerID: "p1", ScoutName: "S", Body: "Raw notes on the striker."}
	require.NoError(t, store.AddReport(report))

	client := textgen.NewMockClient()
	client.GenerateFunc = func(req textgen.GenerateRequest) (string, error) {
		assert.Equal(t, "Raw notes on the striker.", req.Prompt)
		return "Polished review.", nil
	}
	ev := events.NewMock()
	reviewer := scouting.NewReviewer(store, client, ev)

	review, err := reviewer.GenerateReview(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Polished review.", review)

	got, err := store.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Polished review.", got.Review)

	sent := ev.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, string(events.EventScoutingReviewDone), sent[0].Topic)
}

func TestReviewerModelFailureLeavesReportUntouched(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedPlayer(t, db, "p1")

	report := &scouting.Report{PlayerID: "p1", ScoutName: "S", Body: "notes"}
	require.NoError(t, store.AddReport(report))

	client := textgen.NewMockClient()
	client.GenerateFunc = func(req textgen.GenerateRequest) (string, error) {
		return "", errors.New("model down")
	}
	reviewer := scouting.NewReviewer(store, client, events.NewMock())

	_, err := reviewer.GenerateReview(context.Background(), report.ID)
	require.Error(t, err)

	got, err := store.GetReport(report.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Review)
}
