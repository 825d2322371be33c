// Package storage persists small key/value slots of client state in a
// local sqlite database.
package storage

import "context"

// Repository is a durable key/value slot store. Get returns (nil, nil)
// when the key has never been written.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
