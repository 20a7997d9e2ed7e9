package highlights

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Partition names one of the two clip groupings on a player.
type Partition string

const (
	PartitionMatch Partition = "match"
	PartitionBest  Partition = "best"
)

// ParsePartition validates a partition name coming in over the wire.
func ParsePartition(s string) (Partition, error) {
	switch Partition(s) {
	case PartitionMatch, PartitionBest:
		return Partition(s), nil
	}
	return "", fmt.Errorf("unknown highlight partition %q", s)
}

// Clip is one uploaded video plus its display metadata.
type Clip struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	VideoURL string `json:"videoUrl"`
	ClubLogo string `json:"clubLogo,omitempty"`
	// Older records stored the logo under "logoUrl"; normalized into
	// ClubLogo when a document is parsed.
	LegacyLogo string `json:"logoUrl,omitempty"`
	AddedAt    string `json:"addedAt,omitempty"`
}

// NewClipID generates a clip id unique within the owning player.
func NewClipID(playerID string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", playerID, now.UnixMilli(), suffix)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// SanitizeFileName keeps [A-Za-z0-9.-] and replaces everything else with '_'.
func SanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// ClipBaseName strips the extension from an uploaded file name to seed the
// clip's display title.
func ClipBaseName(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i > 0 {
		return fileName[:i]
	}
	return fileName
}
