package highlights_test

import (
	"encoding/json"
	"testing"

	"github.com/onsideagency/touchline/internal/highlights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocEmpty(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("null")} {
		cs, err := highlights.ParseDoc(raw)
		require.NoError(t, err)
		assert.Equal(t, highlights.ShapePartitioned, cs.Shape())
		assert.Empty(t, cs.Clips(highlights.PartitionMatch))
		assert.Empty(t, cs.Clips(highlights.PartitionBest))
	}
}

func TestParseDocLegacyArray(t *testing.T) {
	raw := []byte(`[{"id":"c1","name":"Goal","videoUrl":"https://v/1.mp4"},{"id":"c2","name":"Assist","videoUrl":"https://v/2.mp4"}]`)
	cs, err := highlights.ParseDoc(raw)
	require.NoError(t, err)

	assert.Equal(t, highlights.ShapeLegacy, cs.Shape())
	match := cs.Clips(highlights.PartitionMatch)
	require.Len(t, match, 2)
	assert.Equal(t, "Goal", match[0].Name)
	assert.Empty(t, cs.Clips(highlights.PartitionBest))
}

func TestParseDocPartitioned(t *testing.T) {
	raw := []byte(`{"matchHighlights":[{"id":"m1","name":"Derby","videoUrl":"https://v/m.mp4"}],"bestClips":[{"id":"b1","name":"Top goal","videoUrl":"https://v/b.mp4"}]}`)
	cs, err := highlights.ParseDoc(raw)
	require.NoError(t, err)

	assert.Equal(t, highlights.ShapePartitioned, cs.Shape())
	require.Len(t, cs.Clips(highlights.PartitionMatch), 1)
	require.Len(t, cs.Clips(highlights.PartitionBest), 1)
	assert.Equal(t, "Top goal", cs.Clips(highlights.PartitionBest)[0].Name)
}

func TestParseDocMalformed(t *testing.T) {
	_, err := highlights.ParseDoc([]byte(`{"matchHighlights":`))
	assert.Error(t, err)
}

func TestParseDocLegacyLogoField(t *testing.T) {
	raw := []byte(`[{"id":"c1","name":"Goal","videoUrl":"https://v/1.mp4","logoUrl":"https://v/logo.png"}]`)
	cs, err := highlights.ParseDoc(raw)
	require.NoError(t, err)

	clips := cs.Clips(highlights.PartitionMatch)
	require.Len(t, clips, 1)
	assert.Equal(t, "https://v/logo.png", clips[0].ClubLogo)
}

func TestMarshalDocPreservesLegacyShape(t *testing.T) {
	raw := []byte(`[{"id":"c1","name":"Goal","videoUrl":"https://v/1.mp4"}]`)
	cs, err := highlights.ParseDoc(raw)
	require.NoError(t, err)

	cs.Append(highlights.PartitionMatch, highlights.Clip{ID: "c2", Name: "Assist", VideoURL: "https://v/2.mp4"})

	out, err := cs.MarshalDoc()
	require.NoError(t, err)

	// Still a flat array, not the partitioned object.
	var arr []highlights.Clip
	require.NoError(t, json.Unmarshal(out, &arr))
	require.Len(t, arr, 2)
	assert.Equal(t, "c2", arr[1].ID)
}

func TestLegacyUpgradesWhenBestClipAdded(t *testing.T) {
	raw := []byte(`[{"id":"c1","name":"Goal","videoUrl":"https://v/1.mp4"}]`)
	cs, err := highlights.ParseDoc(raw)
	require.NoError(t, err)

	cs.Append(highlights.PartitionBest, highlights.Clip{ID: "b1", Name: "Top goal", VideoURL: "https://v/b.mp4"})

	out, err := cs.MarshalDoc()
	require.NoError(t, err)

	var doc map[string][]highlights.Clip
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Len(t, doc["matchHighlights"], 1)
	assert.Len(t, doc["bestClips"], 1)
}

func storageWith(t *testing.T, ids ...string) *highlights.ClipStorage {
	t.Helper()
	cs, err := highlights.ParseDoc(nil)
	require.NoError(t, err)
	for _, id := range ids {
		cs.Append(highlights.PartitionMatch, highlights.Clip{ID: id, Name: id, VideoURL: "https://v/" + id})
	}
	return cs
}

func clipIDs(clips []highlights.Clip) []string {
	out := make([]string, len(clips))
	for i, c := range clips {
		out[i] = c.ID
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a"}},
		{"backward", 2, 0, []string{"c", "a", "b"}},
		{"adjacent", 1, 2, []string{"a", "c", "b"}},
		{"same index is a no-op", 1, 1, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := storageWith(t, "a", "b", "c")
			require.NoError(t, cs.Move(highlights.PartitionMatch, tt.from, tt.to))
			assert.Equal(t, tt.want, clipIDs(cs.Clips(highlights.PartitionMatch)))
		})
	}
}

func TestMoveOutOfRange(t *testing.T) {
	cs := storageWith(t, "a", "b")
	assert.Error(t, cs.Move(highlights.PartitionMatch, -1, 0))
	assert.Error(t, cs.Move(highlights.PartitionMatch, 0, 2))
	assert.Error(t, cs.Move(highlights.PartitionMatch, 5, 0))
}

func TestMoveLeavesSiblingPartitionAlone(t *testing.T) {
	cs := storageWith(t, "a", "b", "c")
	cs.Append(highlights.PartitionBest, highlights.Clip{ID: "x", VideoURL: "https://v/x"})

	require.NoError(t, cs.Move(highlights.PartitionMatch, 0, 2))
	assert.Equal(t, []string{"x"}, clipIDs(cs.Clips(highlights.PartitionBest)))
}

func TestRemove(t *testing.T) {
	cs := storageWith(t, "a", "b", "c")
	require.NoError(t, cs.Remove(highlights.PartitionMatch, 1))
	assert.Equal(t, []string{"a", "c"}, clipIDs(cs.Clips(highlights.PartitionMatch)))

	assert.Error(t, cs.Remove(highlights.PartitionMatch, 2))
	assert.Error(t, cs.Remove(highlights.PartitionMatch, -1))
}

func TestFind(t *testing.T) {
	cs := storageWith(t, "a", "b")
	cs.Append(highlights.PartitionBest, highlights.Clip{ID: "", Name: "no id", VideoURL: "https://v/legacy.mp4"})

	p, i, ok := cs.Find("b", "")
	require.True(t, ok)
	assert.Equal(t, highlights.PartitionMatch, p)
	assert.Equal(t, 1, i)

	// Legacy clips without an id fall back to the video URL.
	p, i, ok = cs.Find("", "https://v/legacy.mp4")
	require.True(t, ok)
	assert.Equal(t, highlights.PartitionBest, p)
	assert.Equal(t, 0, i)

	_, _, ok = cs.Find("missing", "https://v/nope.mp4")
	assert.False(t, ok)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "goal_vs_arsenal.mp4", highlights.SanitizeFileName("goal vs arsenal.mp4"))
	assert.Equal(t, "m_ller_50m.mp4", highlights.SanitizeFileName("müller 50m.mp4"))
}

func TestClipBaseName(t *testing.T) {
	assert.Equal(t, "goal", highlights.ClipBaseName("goal.mp4"))
	assert.Equal(t, "highlight.reel", highlights.ClipBaseName("highlight.reel.mov"))
	assert.Equal(t, "clip", highlights.ClipBaseName("clip"))
}

func TestParsePartition(t *testing.T) {
	p, err := highlights.ParsePartition("match")
	require.NoError(t, err)
	assert.Equal(t, highlights.PartitionMatch, p)

	p, err = highlights.ParsePartition("best")
	require.NoError(t, err)
	assert.Equal(t, highlights.PartitionBest, p)

	_, err = highlights.ParsePartition("bogus")
	assert.Error(t, err)
}
