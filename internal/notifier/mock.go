package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendClipPublishedFunc  func(playerID, clipName, videoURL string) error
	SendUploadFailedFunc   func(playerID, fileName, reason string) error
	SendScoutingReviewFunc func(playerID, reportID, review string) error

	// Call records
	ClipPublishedCalls  []ClipPublishedCall
	UploadFailedCalls   []UploadFailedCall
	ScoutingReviewCalls []ScoutingReviewCall
}

// ClipPublishedCall holds the arguments for a call to SendClipPublished.
type ClipPublishedCall struct {
	PlayerID string
	ClipName string
	VideoURL string
}

// UploadFailedCall holds the arguments for a call to SendUploadFailed.
type UploadFailedCall struct {
	PlayerID string
	FileName string
	Reason   string
}

// ScoutingReviewCall holds the arguments for a call to SendScoutingReview.
type ScoutingReviewCall struct {
	PlayerID string
	ReportID string
	Review   string
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClipPublishedCalls = nil
	m.UploadFailedCalls = nil
	m.ScoutingReviewCalls = nil
}

func (m *Mock) SendClipPublished(playerID, clipName, videoURL string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClipPublishedCalls = append(m.ClipPublishedCalls, ClipPublishedCall{PlayerID: playerID, ClipName: clipName, VideoURL: videoURL})
	if m.SendClipPublishedFunc != nil {
		return m.SendClipPublishedFunc(playerID, clipName, videoURL)
	}
	return nil
}

func (m *Mock) SendUploadFailed(playerID, fileName, reason string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadFailedCalls = append(m.UploadFailedCalls, UploadFailedCall{PlayerID: playerID, FileName: fileName, Reason: reason})
	if m.SendUploadFailedFunc != nil {
		return m.SendUploadFailedFunc(playerID, fileName, reason)
	}
	return nil
}

func (m *Mock) SendScoutingReview(playerID, reportID, review string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoutingReviewCalls = append(m.ScoutingReviewCalls, ScoutingReviewCall{PlayerID: playerID, ReportID: reportID, Review: review})
	if m.SendScoutingReviewFunc != nil {
		return m.SendScoutingReviewFunc(playerID, reportID, review)
	}
	return nil
}

// ClipsPublished returns a copy of recorded SendClipPublished calls.
func (m *Mock) ClipsPublished() []ClipPublishedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ClipPublishedCall, len(m.ClipPublishedCalls))
	copy(out, m.ClipPublishedCalls)
	return out
}

// UploadsFailed returns a copy of recorded SendUploadFailed calls.
func (m *Mock) UploadsFailed() []UploadFailedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]UploadFailedCall, len(m.UploadFailedCalls))
	copy(out, m.UploadFailedCalls)
	return out
}

// ScoutingReviews returns a copy of recorded SendScoutingReview calls.
func (m *Mock) ScoutingReviews() []ScoutingReviewCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ScoutingReviewCall, len(m.ScoutingReviewCalls))
	copy(out, m.ScoutingReviewCalls)
	return out
}
