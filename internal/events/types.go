package events

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message published to the bus.
type EventType string

const (
	EventClipPublished      EventType = "clip-published"
	EventClipUploadFailed   EventType = "clip-upload-failed"
	EventScoutingReviewDone EventType = "scouting-review-done"
)

// ClipPublished is the payload for EventClipPublished.
type ClipPublished struct {
	PlayerID  string `msgpack:"player_id"`
	Partition string `msgpack:"partition"`
	ClipID    string `msgpack:"clip_id"`
	ClipName  string `msgpack:"clip_name"`
	VideoURL  string `msgpack:"video_url"`
}

// ClipUploadFailed is the payload for EventClipUploadFailed.
type ClipUploadFailed struct {
	PlayerID string `msgpack:"player_id"`
	FileName string `msgpack:"file_name"`
	Error    string `msgpack:"error"`
}

// ScoutingReviewDone is the payload for EventScoutingReviewDone.
type ScoutingReviewDone struct {
	ReportID string `msgpack:"report_id"`
	PlayerID string `msgpack:"player_id"`
}
