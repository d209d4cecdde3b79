package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flipper/internal/domain"
	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
	"flipper/internal/infrastructure/persistence"
	"flipper/pkg/errcodes"
)

type steppingClock struct {
	t time.Time
}

func (c *steppingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newClock() *steppingClock {
	return &steppingClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

type brokenTransactions struct{}

func (brokenTransactions) Put(context.Context, string, entity.Transaction) error {
	return errors.New("disk full")
}
func (brokenTransactions) All(context.Context) []entity.Transaction { return nil }

func evaluated(id string, price, resale float64) entity.EvaluatedListing {
	return entity.EvaluatedListing{
		Listing: entity.Listing{
			ID:          id,
			Title:       "Item " + id,
			Price:       price,
			Marketplace: value.MarketplaceCraigslist,
			Category:    "electronics",
		},
		EstimatedResaleValue: resale,
		ProfitPotential:      resale - price,
		ProfitMargin:         (resale - price) / price,
	}
}

func newTransactions(clock *steppingClock) *Transactions {
	store := persistence.NewMemoryStore()
	return NewTransactions(persistence.NewBucket[entity.Transaction](store, persistence.BucketTransactions)).
		WithClock(clock.Now)
}

func newInventory(clock *steppingClock) *Inventory {
	store := persistence.NewMemoryStore()
	return NewInventory(persistence.NewBucket[entity.InventoryItem](store, persistence.BucketInventory)).
		WithClock(clock.Now)
}

func TestComputeFinancialStats(t *testing.T) {
	txs := []entity.Transaction{
		{Type: value.TransactionPurchase, Amount: 400},
		{Type: value.TransactionSale, Amount: 700},
		{Type: value.TransactionPurchase, Amount: 600},
		{Type: value.TransactionSale, Amount: 800},
	}

	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}}

	for _, order := range orders {
		shuffled := make([]entity.Transaction, 0, len(txs))
		for _, i := range order {
			shuffled = append(shuffled, txs[i])
		}

		stats := ComputeFinancialStats(shuffled)

		rq := require.New(t)
		rq.InDelta(1000, stats.TotalInvested, 1e-9)
		rq.InDelta(1500, stats.PotentialRevenue, 1e-9)
		rq.InDelta(500, stats.ExpectedProfit, 1e-9)
		rq.InDelta(0.5, stats.ExpectedROI, 1e-9)
		rq.Equal(2, stats.Purchases)
		rq.Equal(2, stats.Sales)
	}
}

func TestComputeFinancialStats_NoInvestment(t *testing.T) {
	stats := ComputeFinancialStats(nil)
	require.Zero(t, stats.ExpectedROI)
	require.Zero(t, stats.TotalInvested)
}

func TestTransactions_Record(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	txs := newTransactions(newClock())

	buy, err := txs.RecordPurchase(ctx, evaluated("ebay_1", 400, 650))
	rq.NoError(err)
	rq.True(strings.HasPrefix(buy.ID, "buy_ebay_1_"))
	rq.Equal(value.TransactionPurchase, buy.Type)
	rq.InDelta(400, buy.Amount, 1e-9)

	item := entity.InventoryItem{EvaluatedListing: evaluated("ebay_1", 400, 650)}
	sale, err := txs.RecordSale(ctx, item)
	rq.NoError(err)
	rq.True(strings.HasPrefix(sale.ID, "sale_ebay_1_"))
	rq.InDelta(650, sale.Amount, 1e-9)

	explicit := 700.0
	item.ResalePrice = &explicit
	sale, err = txs.RecordSale(ctx, item)
	rq.NoError(err)
	rq.InDelta(700, sale.Amount, 1e-9)

	list := txs.List(ctx)
	rq.Len(list, 3)
	rq.Equal(buy.ID, list[0].ID)
	rq.True(list[1].Timestamp.Before(list[2].Timestamp))

	stats := txs.FinancialStats(ctx)
	rq.InDelta(400, stats.TotalInvested, 1e-9)
	rq.InDelta(1350, stats.PotentialRevenue, 1e-9)
}

func TestTransactions_WriteFailurePropagates(t *testing.T) {
	txs := NewTransactions(brokenTransactions{})

	_, err := txs.RecordPurchase(context.Background(), evaluated("x", 100, 200))
	require.Error(t, err)
	require.True(t, domain.HasCode(err, errcodes.LedgerWriteFailed))
}

func TestInventory_Lifecycle(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	inv := newInventory(newClock())

	item, err := inv.Add(ctx, evaluated("fb_1", 300, 450))
	rq.NoError(err)
	rq.Equal(value.StatusPurchased, item.Status)
	rq.Nil(item.ListedDate)

	_, err = inv.MarkSold(ctx, "fb_1", 0)
	rq.True(domain.HasCode(err, errcodes.InvalidStatusTransition))

	relisted, err := inv.Relist(ctx)
	rq.NoError(err)
	rq.Len(relisted, 1)
	rq.Equal("resale_fb_1", relisted[0].Listing.ID)
	rq.InDelta(450, relisted[0].Listing.Price, 1e-9)
	rq.Equal(value.MarketplaceCraigslist, relisted[0].Listing.Marketplace)
	rq.Equal("Item fb_1", relisted[0].Listing.Title)

	stored, err := inv.Get(ctx, "fb_1")
	rq.NoError(err)
	rq.Equal(value.StatusListed, stored.Status)
	rq.NotNil(stored.ListedDate)
	rq.InDelta(450, *stored.ResalePrice, 1e-9)

	sold, err := inv.MarkSold(ctx, "fb_1", 480)
	rq.NoError(err)
	rq.Equal(value.StatusSold, sold.Status)
	rq.NotNil(sold.SoldDate)
	rq.InDelta(480, *sold.ResalePrice, 1e-9)

	_, err = inv.MarkSold(ctx, "fb_1", 480)
	rq.True(domain.HasCode(err, errcodes.InvalidStatusTransition))

	_, err = inv.MarkSold(ctx, "missing", 1)
	rq.True(domain.HasCode(err, errcodes.InventoryItemNotFound))
}

func TestInventory_RelistIsIdempotent(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	inv := newInventory(newClock())

	for _, id := range []string{"a", "b", "c"} {
		_, err := inv.Add(ctx, evaluated(id, 100, 200))
		rq.NoError(err)
	}

	first, err := inv.Relist(ctx)
	rq.NoError(err)
	rq.Len(first, 3)

	second, err := inv.Relist(ctx)
	rq.NoError(err)
	rq.Empty(second)

	_, err = inv.Add(ctx, evaluated("d", 100, 200))
	rq.NoError(err)

	third, err := inv.Relist(ctx)
	rq.NoError(err)
	rq.Len(third, 1)
	rq.Equal("resale_d", third[0].Listing.ID)

	counts := inv.CountByStatus(ctx)
	rq.Equal(4, counts[value.StatusListed])
	rq.Equal(0, counts[value.StatusPurchased])
	rq.Equal(0, counts[value.StatusSold])
}
