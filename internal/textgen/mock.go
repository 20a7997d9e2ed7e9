package textgen

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GenerateFunc func(req GenerateRequest) (string, error)
	StreamFunc   func(req GenerateRequest, fn func(token string) error) error

	// Call records
	GenerateCalls []GenerateRequest
	StreamCalls   []GenerateRequest
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = nil
	m.StreamCalls = nil
}

func (m *MockClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = append(m.GenerateCalls, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(req)
	}
	return "", nil
}

func (m *MockClient) Stream(ctx context.Context, req GenerateRequest, fn func(token string) error) error {
	m.mu.Lock()
	m.StreamCalls = append(m.StreamCalls, req)
	streamFunc := m.StreamFunc
	m.mu.Unlock()
	if streamFunc != nil {
		return streamFunc(req, fn)
	}
	return nil
}
