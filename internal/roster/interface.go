package roster

import "context"

// PlayerStore defines the interface for interacting with the roster data.
type PlayerStore interface {
	CreatePlayer(player *PlayerInfo) error
	GetPlayer(playerID string) (*PlayerInfo, error)
	ListPlayers() ([]PlayerInfo, error)
	UpdatePlayer(player *PlayerInfo) error
	DeletePlayer(playerID string) error
	Clear()

	// HighlightsDoc returns the raw highlights JSON document and its
	// current version. A player without highlights returns a nil document
	// and version 0.
	HighlightsDoc(ctx context.Context, playerID string) ([]byte, int64, error)
	// CompareAndSwapHighlights rewrites the whole document, but only when
	// the stored version still matches expected. A lost race returns
	// highlights.ErrConflict so callers can re-read and retry.
	CompareAndSwapHighlights(ctx context.Context, playerID string, doc []byte, expected int64) error
}
