package blob

import (
	"context"
	"io"
)

// Store is an opaque blob store keyed by generated paths. Implementations
// return a stable reference path from Store; Delete on a missing path is
// a no-op.
type Store interface {
	Store(ctx context.Context, key string, contentType string, reader io.Reader) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
}
