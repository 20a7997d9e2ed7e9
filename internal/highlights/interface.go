package highlights

import "context"

// Store defines the player-document operations the manager needs. The roster
// store satisfies this.
type Store interface {
	// HighlightsDoc returns the raw highlights document and its current
	// version for one player.
	HighlightsDoc(ctx context.Context, playerID string) ([]byte, int64, error)
	// CompareAndSwapHighlights replaces the document only if the stored
	// version still equals expected. Returns an error matching ErrConflict
	// when another writer got there first.
	CompareAndSwapHighlights(ctx context.Context, playerID string, doc []byte, expected int64) error
}

// Collection is a normalized read view over both partitions.
type Collection struct {
	MatchHighlights []Clip `json:"matchHighlights"`
	BestClips       []Clip `json:"bestClips"`
}
