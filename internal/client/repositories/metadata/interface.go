// Package metadata is a small key/value repository over the local SQLite
// database. The session token lives here under common.TokenStorageKey.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns (nil, nil) for an
// absent key; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
