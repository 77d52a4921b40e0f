// Package tokenstore persists the session token between runs, playing the
// part browser localStorage plays for the web front end.
package tokenstore

import "context"

// Store keeps a single session token. Load returns "" when nothing is stored.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}
