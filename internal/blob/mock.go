package blob

import (
	"context"
	"sync"
)

// Mock is an in-memory implementation of the Store interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// UploadFunc, when set, decides the outcome of Upload calls.
	UploadFunc func(path string, data []byte, contentType string) (string, error)

	// Objects records every successful upload by path.
	Objects map[string][]byte
	// UploadCalls records the paths passed to Upload, in order.
	UploadCalls []string
}

var _ Store = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{Objects: make(map[string][]byte)}
}

func (m *Mock) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls = append(m.UploadCalls, path)
	if m.UploadFunc != nil {
		url, err := m.UploadFunc(path, data, contentType)
		if err != nil {
			return "", err
		}
		m.Objects[path] = data
		return url, nil
	}
	m.Objects[path] = data
	return m.PublicURL(path), nil
}

func (m *Mock) PublicURL(path string) string {
	return "https://blob.test/" + path
}

// Uploads returns how many Upload calls were made.
func (m *Mock) Uploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.UploadCalls)
}
