package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"flipper/internal/domain"
	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
	"flipper/pkg/errcodes"
	"flipper/pkg/logx"
)

// Transactions is the append-only transaction log.
type Transactions struct {
	repo TransactionRepository
	now  func() time.Time
}

func NewTransactions(repo TransactionRepository) *Transactions {
	return &Transactions{
		repo: repo,
		now:  time.Now,
	}
}

func (t *Transactions) WithClock(now func() time.Time) *Transactions {
	t.now = now
	return t
}

// RecordPurchase appends a purchase of the listing at its price.
func (t *Transactions) RecordPurchase(ctx context.Context, ev entity.EvaluatedListing) (entity.Transaction, error) {
	tx := entity.Transaction{
		ID:        "buy_" + ev.ID + "_" + xid.New().String(),
		Type:      value.TransactionPurchase,
		ListingID: ev.ID,
		Amount:    ev.Price,
		Timestamp: t.now(),
	}

	return tx, t.append(ctx, tx)
}

// RecordSale appends a sale at the item's resale price, falling back to its
// estimated resale value.
func (t *Transactions) RecordSale(ctx context.Context, item entity.InventoryItem) (entity.Transaction, error) {
	tx := entity.Transaction{
		ID:        "sale_" + item.ID + "_" + xid.New().String(),
		Type:      value.TransactionSale,
		ListingID: item.ID,
		Amount:    item.SaleAmount(),
		Timestamp: t.now(),
	}

	return tx, t.append(ctx, tx)
}

func (t *Transactions) append(ctx context.Context, tx entity.Transaction) error {
	if err := t.repo.Put(ctx, tx.ID, tx); err != nil {
		return domain.WrapError(err, errcodes.LedgerWriteFailed,
			fmt.Sprintf("record %s transaction for %s", tx.Type, tx.ListingID))
	}

	logger(ctx).Info("transaction recorded",
		logx.FieldListingID, tx.ListingID,
		"type", tx.Type.String(),
		"amount", tx.Amount,
	)

	return nil
}

// List returns all transactions, oldest first.
func (t *Transactions) List(ctx context.Context) []entity.Transaction {
	txs := t.repo.All(ctx)

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.Before(txs[j].Timestamp)
	})

	return txs
}

func (t *Transactions) FinancialStats(ctx context.Context) entity.FinancialStats {
	return ComputeFinancialStats(t.repo.All(ctx))
}

// ComputeFinancialStats aggregates a transaction log. The result does not
// depend on the order of txs.
func ComputeFinancialStats(txs []entity.Transaction) entity.FinancialStats {
	invested := decimal.Zero
	revenue := decimal.Zero

	var stats entity.FinancialStats

	for _, tx := range txs {
		switch tx.Type {
		case value.TransactionPurchase:
			invested = invested.Add(decimal.NewFromFloat(tx.Amount))
			stats.Purchases++
		case value.TransactionSale:
			revenue = revenue.Add(decimal.NewFromFloat(tx.Amount))
			stats.Sales++
		}
	}

	profit := revenue.Sub(invested)

	stats.TotalInvested = invested.InexactFloat64()
	stats.PotentialRevenue = revenue.InexactFloat64()
	stats.ExpectedProfit = profit.InexactFloat64()

	if invested.IsPositive() {
		stats.ExpectedROI = profit.Div(invested).InexactFloat64()
	}

	return stats
}
