package knowledge_test

import (
	"testing"

	"github.com/onsideagency/touchline/internal/database"
	"github.com/onsideagency/touchline/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (knowledge.ArticleStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return knowledge.NewStore(db), dbTeardown
}

func TestAddAndGetArticle(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	article := &knowledge.Article{
		Title:    "Pressing triggers",
		Category: "tactics",
		Body:     "Press on back-passes and bad first touches.",
		Tags:     []string{"pressing", "defence"},
	}
	require.NoError(t, store.AddArticle(article))
	assert.NotEmpty(t, article.ID)

	got, err := store.GetArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pressing triggers", got.Title)
	assert.Equal(t, []string{"pressing", "defence"}, got.Tags)

	_, err = store.GetArticle("missing")
	assert.ErrorIs(t, err, knowledge.ErrArticleNotFound)
}

func TestSearch(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddArticle(&knowledge.Article{Title: "Pressing triggers", Body: "Press early."}))
	require.NoError(t, store.AddArticle(&knowledge.Article{Title: "Nutrition", Body: "Carbs before pressing matches."}))
	require.NoError(t, store.AddArticle(&knowledge.Article{Title: "Recovery", Body: "Sleep.", Tags: []string{"rest", "pressing"}}))

	// Matches in title, body, or tags.
	hits, err := store.Search("pressing")
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	// A tag-only match still counts.
	tagged, err := store.Search("rest")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Recovery", tagged[0].Title)

	// An empty query returns everything.
	all, err := store.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.Search("zonal marking")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteArticle(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	article := &knowledge.Article{Title: "Short-lived", Body: "x"}
	require.NoError(t, store.AddArticle(article))

	require.NoError(t, store.DeleteArticle(article.ID))
	assert.ErrorIs(t, store.DeleteArticle(article.ID), knowledge.ErrArticleNotFound)
}
