package highlights

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape identifies the persisted layout of a player's highlights document.
type Shape int

const (
	// ShapeLegacy is the original flat array of clips. It is treated as the
	// match partition; such documents predate the best-clips grouping.
	ShapeLegacy Shape = iota
	// ShapePartitioned is the current object layout with two named arrays.
	ShapePartitioned
)

// ClipStorage is the in-memory form of the highlights document. The two
// persisted shapes are handled here, once, so the rest of the code never
// inspects raw JSON.
type ClipStorage struct {
	shape Shape
	match []Clip
	best  []Clip
}

type partitionedDoc struct {
	MatchHighlights []Clip `json:"matchHighlights"`
	BestClips       []Clip `json:"bestClips"`
}

// ParseDoc decodes a stored highlights document. A missing or null document
// parses as an empty partitioned storage, so new players start on the
// current shape.
func ParseDoc(raw []byte) (*ClipStorage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &ClipStorage{shape: ShapePartitioned}, nil
	}
	switch trimmed[0] {
	case '[':
		var clips []Clip
		if err := json.Unmarshal(trimmed, &clips); err != nil {
			return nil, fmt.Errorf("failed to parse legacy highlights array: %w", err)
		}
		normalizeClips(clips)
		return &ClipStorage{shape: ShapeLegacy, match: clips}, nil
	case '{':
		var doc partitionedDoc
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse highlights document: %w", err)
		}
		normalizeClips(doc.MatchHighlights)
		normalizeClips(doc.BestClips)
		return &ClipStorage{shape: ShapePartitioned, match: doc.MatchHighlights, best: doc.BestClips}, nil
	}
	return nil, fmt.Errorf("highlights document is neither an array nor an object")
}

// normalizeClips folds the legacy "logoUrl" key into ClubLogo.
func normalizeClips(clips []Clip) {
	for i := range clips {
		if clips[i].ClubLogo == "" && clips[i].LegacyLogo != "" {
			clips[i].ClubLogo = clips[i].LegacyLogo
		}
		clips[i].LegacyLogo = ""
	}
}

// MarshalDoc serializes the storage back to its persisted shape. Legacy
// documents stay flat arrays unless a mutation gave them best clips, in
// which case SetClips already upgraded the shape.
func (cs *ClipStorage) MarshalDoc() ([]byte, error) {
	if cs.shape == ShapeLegacy {
		if cs.match == nil {
			return json.Marshal([]Clip{})
		}
		return json.Marshal(cs.match)
	}
	doc := partitionedDoc{MatchHighlights: cs.match, BestClips: cs.best}
	if doc.MatchHighlights == nil {
		doc.MatchHighlights = []Clip{}
	}
	if doc.BestClips == nil {
		doc.BestClips = []Clip{}
	}
	return json.Marshal(doc)
}

// Shape reports the persisted layout this storage will serialize to.
func (cs *ClipStorage) Shape() Shape {
	return cs.shape
}

// Clips returns the ordered clip slice for a partition. The stored order is
// the display order; there is no hidden display-time sort.
func (cs *ClipStorage) Clips(p Partition) []Clip {
	if p == PartitionBest {
		return cs.best
	}
	return cs.match
}

// SetClips replaces one partition's clips. Writing a non-empty best
// partition into a legacy document upgrades it to the partitioned shape;
// everything else preserves the stored layout.
func (cs *ClipStorage) SetClips(p Partition, clips []Clip) {
	if p == PartitionBest {
		cs.best = clips
		if cs.shape == ShapeLegacy && len(clips) > 0 {
			cs.shape = ShapePartitioned
		}
		return
	}
	cs.match = clips
}

// Append adds a clip to the end of a partition.
func (cs *ClipStorage) Append(p Partition, clip Clip) {
	cs.SetClips(p, append(cs.Clips(p), clip))
}

// Move splices the clip at from out of a partition and reinserts it at to.
// Moving an index onto itself is a no-op.
func (cs *ClipStorage) Move(p Partition, from, to int) error {
	clips := cs.Clips(p)
	if from < 0 || from >= len(clips) || to < 0 || to >= len(clips) {
		return fmt.Errorf("move out of range: from=%d to=%d len=%d", from, to, len(clips))
	}
	if from == to {
		return nil
	}
	next := make([]Clip, 0, len(clips))
	next = append(next, clips[:from]...)
	next = append(next, clips[from+1:]...)
	next = append(next[:to], append([]Clip{clips[from]}, next[to:]...)...)
	cs.SetClips(p, next)
	return nil
}

// Remove deletes the clip at index from a partition.
func (cs *ClipStorage) Remove(p Partition, index int) error {
	clips := cs.Clips(p)
	if index < 0 || index >= len(clips) {
		return fmt.Errorf("remove out of range: index=%d len=%d", index, len(clips))
	}
	next := make([]Clip, 0, len(clips)-1)
	next = append(next, clips[:index]...)
	next = append(next, clips[index+1:]...)
	cs.SetClips(p, next)
	return nil
}

// Find locates a clip by id, falling back to an exact videoUrl match for
// legacy records that never got ids. It searches both partitions.
func (cs *ClipStorage) Find(id, videoURL string) (Partition, int, bool) {
	for _, p := range []Partition{PartitionMatch, PartitionBest} {
		for i, c := range cs.Clips(p) {
			if (id != "" && c.ID == id) || (videoURL != "" && c.VideoURL == videoURL) {
				return p, i, true
			}
		}
	}
	return "", 0, false
}
