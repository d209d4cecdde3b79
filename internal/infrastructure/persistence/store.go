package persistence

import (
	"context"
	"errors"

	"flipper/pkg/contextx"
)

const (
	BucketAgent        = "flipper-agent"
	BucketListings     = "flipper-listings"
	BucketTransactions = "flipper-transactions"
	BucketInventory    = "flipper-inventory"
	BucketReferences   = "flipper-references"
)

var ErrNotFound = errors.New("key not found")

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// KeyValueStore is an opaque bucketed key/value store. It has no query or
// transactional guarantees.
type KeyValueStore interface {
	Put(ctx context.Context, bucket, key string, value []byte) error
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// List returns the keys of a bucket in ascending order.
	List(ctx context.Context, bucket string) ([]string, error)
	Delete(ctx context.Context, bucket, key string) error
}
