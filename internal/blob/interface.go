package blob

import "context"

// Store defines the binary-object persistence collaborator: upload bytes
// under a path, get a stable public URL back.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	PublicURL(path string) string
}
