package notifier

// Notifier defines a high-level interface for telling staff about business
// events. This decouples the rest of the application from the specific
// notification provider (e.g., Slack).
type Notifier interface {
	// A clip finished uploading and is live on the player's profile.
	SendClipPublished(playerID, clipName, videoURL string, dryRun bool) error
	// An upload ended in error and is waiting for a manual retry.
	SendUploadFailed(playerID, fileName, reason string, dryRun bool) error
	// An AI scouting review finished generating.
	SendScoutingReview(playerID, reportID, review string, dryRun bool) error
}
