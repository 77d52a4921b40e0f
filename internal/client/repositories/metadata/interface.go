// Package metadata is the local key/value table the client keeps its
// session state in.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value stored under key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
