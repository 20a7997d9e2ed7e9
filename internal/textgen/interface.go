package textgen

import "context"

// Client defines the text-generation collaborator. Generate returns the
// whole completion in one shot; Stream delivers tokens incrementally as
// they arrive over SSE.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Stream(ctx context.Context, req GenerateRequest, fn func(token string) error) error
}
