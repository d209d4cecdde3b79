package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"flipper/internal/domain"
	"flipper/pkg/errcodes"
)

// Queries use ? placeholders and go through Rebind, so the same statements
// work on Postgres (pgx) and SQLite.
const (
	queryUpsert = `
		INSERT INTO kv_items (bucket, item_key, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (bucket, item_key)
		DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	querySelect = `SELECT payload FROM kv_items WHERE bucket = ? AND item_key = ?`
	queryKeys   = `SELECT item_key FROM kv_items WHERE bucket = ? ORDER BY item_key`
	queryDelete = `DELETE FROM kv_items WHERE bucket = ? AND item_key = ?`
)

// SQLStore keeps every bucket in the kv_items table.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:  db,
		now: time.Now,
	}
}

func (s *SQLStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(queryUpsert), bucket, key, string(value), s.now().UTC())
	if err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("sql put %s/%s", bucket, key))
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var payload string

	err := s.db.GetContext(ctx, &payload, s.db.Rebind(querySelect), bucket, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("sql get %s/%s", bucket, key))
	}

	return []byte(payload), nil
}

func (s *SQLStore) List(ctx context.Context, bucket string) ([]string, error) {
	keys := []string{}

	if err := s.db.SelectContext(ctx, &keys, s.db.Rebind(queryKeys), bucket); err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("sql list %s", bucket))
	}

	return keys, nil
}

func (s *SQLStore) Delete(ctx context.Context, bucket, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(queryDelete), bucket, key); err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, fmt.Sprintf("sql delete %s/%s", bucket, key))
	}
	return nil
}
