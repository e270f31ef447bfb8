// Package metadata is the client's small key/value table. It holds the Local
// Store blob and the saved session.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
