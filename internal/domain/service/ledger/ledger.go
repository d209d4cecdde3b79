package ledger

import (
	"context"

	"flipper/internal/domain/entity"
	"flipper/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type TransactionRepository interface {
	Put(ctx context.Context, key string, tx entity.Transaction) error
	All(ctx context.Context) []entity.Transaction
}

type InventoryRepository interface {
	Put(ctx context.Context, key string, item entity.InventoryItem) error
	Get(ctx context.Context, key string) (entity.InventoryItem, bool)
	All(ctx context.Context) []entity.InventoryItem
}
