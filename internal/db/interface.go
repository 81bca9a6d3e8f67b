package db

import (
	"context"
)

//go:generate mockery --name=KeyValueStore --output=../../tests/mocks --outpkg=mocks --filename=mock_key_value_store.go
// KeyValueStore is the persistent local store backing the fee cache and cooldowns.
// Implementations must be safe for concurrent use.
type KeyValueStore interface {
	Ping(ctx context.Context) error
	// Get returns *NotFoundError when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put creates or overwrites the value of key.
	Put(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}
