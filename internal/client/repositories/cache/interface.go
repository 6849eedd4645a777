package cache

import (
	"context"
)

// Repository is a byte-level key-value store partitioned by scope.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Scope returns a view of the same storage restricted to another scope.
	Scope(scope string) Repository
}
