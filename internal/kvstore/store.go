// Package kvstore provides the key-value blob store backing the mock
// credential backend. Each key holds one JSON document that is read and
// fully rewritten on every mutation, mirroring how the browser prototype
// used localStorage.
package kvstore

import "context"

// Keys under which the mock backend keeps its three collections.
const (
	KeyUsers     = "mockUsers"
	KeyPasswords = "mockPasswords"
	KeyTokens    = "mockTokens"
)

// Store is a minimal durable key-value blob store.
//
// Get returns common.ErrorNotFound when the key is absent. Set overwrites
// any previous value. Implementations are safe for concurrent use, but the
// interface offers no cross-key atomicity: callers that rewrite several keys
// do so non-atomically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
