package persistence

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"flipper/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Bucket stores JSON encoded records of one type.
//
// Reads never fail: storage errors and corrupt records are logged and read as
// missing. Writes return their errors so callers can decide what is fatal.
type Bucket[T any] struct {
	store KeyValueStore
	name  string
}

func NewBucket[T any](store KeyValueStore, name string) *Bucket[T] {
	return &Bucket[T]{
		store: store,
		name:  name,
	}
}

func (b *Bucket[T]) Put(ctx context.Context, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal %s/%s: %w", b.name, key, err)
	}

	if err := b.store.Put(ctx, b.name, key, data); err != nil {
		return fmt.Errorf("store.Put: %w", err)
	}

	return nil
}

// Find is Get with the failure kept: ErrNotFound means the key is confirmed
// missing, any other error is a storage or decoding failure.
func (b *Bucket[T]) Find(ctx context.Context, key string) (T, error) {
	var v T

	data, err := b.store.Get(ctx, b.name, key)
	if errors.Is(err, ErrNotFound) {
		return v, ErrNotFound
	}
	if err != nil {
		return v, fmt.Errorf("store.Get %s/%s: %w", b.name, key, err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("json.Unmarshal %s/%s: %w", b.name, key, err)
	}

	return v, nil
}

func (b *Bucket[T]) Get(ctx context.Context, key string) (T, bool) {
	v, err := b.Find(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return v, false
	}
	if err != nil {
		logger(ctx).Error("bucket read failed",
			logx.FieldBucket, b.name,
			logx.FieldKey, key,
			logx.Error(err),
		)
		return v, false
	}

	return v, true
}

// All returns every readable record of the bucket in key order.
func (b *Bucket[T]) All(ctx context.Context) []T {
	keys, err := b.store.List(ctx, b.name)
	if err != nil {
		logger(ctx).Error("bucket list failed",
			logx.FieldBucket, b.name,
			logx.Error(err),
		)
		return []T{}
	}

	out := make([]T, 0, len(keys))
	for _, key := range keys {
		if v, ok := b.Get(ctx, key); ok {
			out = append(out, v)
		}
	}

	return out
}

func (b *Bucket[T]) Delete(ctx context.Context, key string) error {
	if err := b.store.Delete(ctx, b.name, key); err != nil {
		return fmt.Errorf("store.Delete: %w", err)
	}
	return nil
}
