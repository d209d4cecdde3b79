package persistence

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"flipper/internal/domain"
	"flipper/pkg/errcodes"
)

const redisKeyPrefix = "flipper:"

// RedisStore keeps each bucket in one hash.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
	}
}

// WithPrefix namespaces the bucket hashes, mostly for tests sharing one Redis.
func (s *RedisStore) WithPrefix(prefix string) *RedisStore {
	s.prefix = prefix
	return s
}

func (s *RedisStore) hashKey(bucket string) string {
	return s.prefix + bucket
}

func (s *RedisStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	if err := s.client.HSet(ctx, s.hashKey(bucket), key, value).Err(); err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("redis put %s/%s", bucket, key))
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	value, err := s.client.HGet(ctx, s.hashKey(bucket), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("redis get %s/%s", bucket, key))
	}
	return value, nil
}

func (s *RedisStore) List(ctx context.Context, bucket string) ([]string, error) {
	keys, err := s.client.HKeys(ctx, s.hashKey(bucket)).Result()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("redis list %s", bucket))
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *RedisStore) Delete(ctx context.Context, bucket, key string) error {
	if err := s.client.HDel(ctx, s.hashKey(bucket), key).Err(); err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("redis delete %s/%s", bucket, key))
	}
	return nil
}
