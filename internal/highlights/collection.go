package highlights

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/metrics"
)

// ErrConflict is returned when a mutation lost the compare-and-swap race
// more times than the retry budget allows.
var ErrConflict = errors.New("highlights document changed concurrently")

// ErrClipNotFound is returned when a metadata edit cannot locate its clip.
var ErrClipNotFound = errors.New("clip not found")

// casRetries bounds how often a mutator re-reads after losing the version
// race before giving up.
const casRetries = 5

// Manager owns every mutation of a player's highlights document. All writes
// go through a versioned read-modify-write loop so concurrent mutators never
// silently clobber each other.
type Manager struct {
	store   Store
	metrics metrics.Metrics
}

// NewManager creates a new Manager.
func NewManager(store Store, metrics metrics.Metrics) *Manager {
	return &Manager{store: store, metrics: metrics}
}

// Collection returns the normalized view of both partitions.
func (m *Manager) Collection(ctx context.Context, playerID string) (*Collection, error) {
	raw, _, err := m.store.HighlightsDoc(ctx, playerID)
	if err != nil {
		return nil, err
	}
	cs, err := ParseDoc(raw)
	if err != nil {
		return nil, err
	}
	col := &Collection{
		MatchHighlights: cs.Clips(PartitionMatch),
		BestClips:       cs.Clips(PartitionBest),
	}
	if col.MatchHighlights == nil {
		col.MatchHighlights = []Clip{}
	}
	if col.BestClips == nil {
		col.BestClips = []Clip{}
	}
	return col, nil
}

// AppendClip adds a clip to the end of a partition.
func (m *Manager) AppendClip(ctx context.Context, playerID string, p Partition, clip Clip) error {
	return m.mutate(ctx, playerID, "append", func(cs *ClipStorage) error {
		cs.Append(p, clip)
		return nil
	})
}

// Reorder splice-moves a clip within one partition. The sibling partition is
// untouched and from == to is a no-op.
func (m *Manager) Reorder(ctx context.Context, playerID string, p Partition, from, to int) error {
	return m.mutate(ctx, playerID, "reorder", func(cs *ClipStorage) error {
		return cs.Move(p, from, to)
	})
}

// DeleteClip removes the clip at index from one partition.
func (m *Manager) DeleteClip(ctx context.Context, playerID string, p Partition, index int) error {
	return m.mutate(ctx, playerID, "delete", func(cs *ClipStorage) error {
		return cs.Remove(p, index)
	})
}

// ClipUpdate carries a metadata edit. The clip is located by ID, falling
// back to VideoURL for legacy records without one.
type ClipUpdate struct {
	ID       string
	VideoURL string
	Name     string
	ClubLogo *string // nil leaves the logo untouched
}

// UpdateClip rewrites one clip's name/logo in place without touching its
// position or any other clip. The stored shape is preserved, so a legacy
// flat array is written back as a flat array.
func (m *Manager) UpdateClip(ctx context.Context, playerID string, upd ClipUpdate) error {
	return m.mutate(ctx, playerID, "update", func(cs *ClipStorage) error {
		p, i, ok := cs.Find(upd.ID, upd.VideoURL)
		if !ok {
			return ErrClipNotFound
		}
		clips := cs.Clips(p)
		if upd.Name != "" {
			clips[i].Name = upd.Name
		}
		if upd.ClubLogo != nil {
			clips[i].ClubLogo = *upd.ClubLogo
		}
		return nil
	})
}

// mutate runs one read-modify-write cycle, retrying on version conflicts.
func (m *Manager) mutate(ctx context.Context, playerID, op string, fn func(*ClipStorage) error) error {
	for attempt := 0; attempt < casRetries; attempt++ {
		raw, version, err := m.store.HighlightsDoc(ctx, playerID)
		if err != nil {
			return fmt.Errorf("failed to read highlights for player %s: %w", playerID, err)
		}
		cs, err := ParseDoc(raw)
		if err != nil {
			return fmt.Errorf("failed to parse highlights for player %s: %w", playerID, err)
		}
		if err := fn(cs); err != nil {
			return err
		}
		doc, err := cs.MarshalDoc()
		if err != nil {
			return fmt.Errorf("failed to serialize highlights for player %s: %w", playerID, err)
		}
		err = m.store.CompareAndSwapHighlights(ctx, playerID, doc, version)
		if err == nil {
			m.metrics.IncHighlightMutations(op)
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return err
		}
		m.metrics.IncVersionConflicts()
		log.Debug("Highlights version conflict, retrying", "playerID", playerID, "op", op, "attempt", attempt+1)
	}
	return fmt.Errorf("%s for player %s: %w", op, playerID, ErrConflict)
}
