package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	uploadsStarted     int
	uploadsCompleted   int
	uploadsFailed      int
	uploadDurations    []float64
	highlightMutations map[string]int
	versionConflicts   int
	notifSent          int
	notifFailed        int
	textGenRequests    int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		highlightMutations: make(map[string]int),
	}
}

func (m *Mock) IncUploadsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadsStarted++
}

func (m *Mock) IncUploadsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadsCompleted++
}

func (m *Mock) IncUploadsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadsFailed++
}

func (m *Mock) ObserveUploadDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadDurations = append(m.uploadDurations, seconds)
}

func (m *Mock) IncHighlightMutations(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highlightMutations[op]++
}

func (m *Mock) IncVersionConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versionConflicts++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) IncTextGenRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textGenRequests++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// UploadsStarted returns how many times IncUploadsStarted was called.
func (m *Mock) UploadsStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadsStarted
}

// UploadsCompleted returns how many times IncUploadsCompleted was called.
func (m *Mock) UploadsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadsCompleted
}

// UploadsFailed returns how many times IncUploadsFailed was called.
func (m *Mock) UploadsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadsFailed
}

// HighlightMutations returns the mutation count recorded for one operation.
func (m *Mock) HighlightMutations(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.highlightMutations[op]
}

// VersionConflicts returns how many times IncVersionConflicts was called.
func (m *Mock) VersionConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versionConflicts
}

// TextGenRequests returns how many times IncTextGenRequests was called.
func (m *Mock) TextGenRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textGenRequests
}
