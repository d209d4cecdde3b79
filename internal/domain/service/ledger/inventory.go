package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"flipper/internal/domain"
	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
	"flipper/pkg/errcodes"
	"flipper/pkg/logx"
)

// Relisting pairs an inventory item flipped to listed with its resale offer.
type Relisting struct {
	Item    entity.InventoryItem
	Listing entity.Listing
}

// Inventory tracks purchased items through purchased -> listed -> sold.
type Inventory struct {
	repo InventoryRepository
	now  func() time.Time
}

func NewInventory(repo InventoryRepository) *Inventory {
	return &Inventory{
		repo: repo,
		now:  time.Now,
	}
}

func (i *Inventory) WithClock(now func() time.Time) *Inventory {
	i.now = now
	return i
}

func (i *Inventory) Add(ctx context.Context, ev entity.EvaluatedListing) (entity.InventoryItem, error) {
	item := entity.InventoryItem{
		EvaluatedListing: ev,
		PurchaseDate:     i.now(),
		Status:           value.StatusPurchased,
	}

	if err := i.repo.Put(ctx, item.ID, item); err != nil {
		return item, domain.WrapError(err, errcodes.LedgerWriteFailed,
			fmt.Sprintf("add inventory item %s", item.ID))
	}

	return item, nil
}

func (i *Inventory) Get(ctx context.Context, id string) (entity.InventoryItem, error) {
	item, ok := i.repo.Get(ctx, id)
	if !ok {
		return item, domain.NewError(errcodes.InventoryItemNotFound,
			fmt.Sprintf("inventory item %q not found", id))
	}
	return item, nil
}

// List returns all items, oldest purchase first.
func (i *Inventory) List(ctx context.Context) []entity.InventoryItem {
	items := i.repo.All(ctx)

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].PurchaseDate.Before(items[b].PurchaseDate)
	})

	return items
}

func (i *Inventory) CountByStatus(ctx context.Context) map[value.InventoryStatus]int {
	counts := map[value.InventoryStatus]int{
		value.StatusPurchased: 0,
		value.StatusListed:    0,
		value.StatusSold:      0,
	}

	for status, items := range lo.GroupBy(i.repo.All(ctx), func(item entity.InventoryItem) value.InventoryStatus {
		return item.Status
	}) {
		counts[status] = len(items)
	}

	return counts
}

// Relist creates a resale offer for every purchased item and marks it listed.
// Items already listed or sold are skipped, so a second sweep returns nothing
// new. On a write failure the relistings completed so far are returned along
// with the error.
func (i *Inventory) Relist(ctx context.Context) ([]Relisting, error) {
	purchased := lo.Filter(i.List(ctx), func(item entity.InventoryItem, _ int) bool {
		return item.Status == value.StatusPurchased
	})

	out := make([]Relisting, 0, len(purchased))

	for _, item := range purchased {
		now := i.now()
		resale := item.EstimatedResaleValue

		item.Status = value.StatusListed
		item.ListedDate = &now
		item.ResalePrice = &resale

		if err := i.repo.Put(ctx, item.ID, item); err != nil {
			return out, domain.WrapError(err, errcodes.LedgerWriteFailed,
				fmt.Sprintf("list inventory item %s", item.ID))
		}

		out = append(out, Relisting{
			Item:    item,
			Listing: item.Relisting(now),
		})
	}

	if len(out) > 0 {
		logger(ctx).Info("items relisted", logx.FieldCount, len(out))
	}

	return out, nil
}

// MarkSold moves a listed item to sold. A positive price overrides the resale price.
func (i *Inventory) MarkSold(ctx context.Context, id string, price float64) (entity.InventoryItem, error) {
	item, err := i.Get(ctx, id)
	if err != nil {
		return item, err
	}

	if !item.Status.CanTransitionTo(value.StatusSold) {
		return item, domain.NewError(errcodes.InvalidStatusTransition,
			fmt.Sprintf("inventory item %q is %s and cannot be sold", id, item.Status))
	}

	now := i.now()
	item.Status = value.StatusSold
	item.SoldDate = &now
	if price > 0 {
		item.ResalePrice = &price
	}

	if err := i.repo.Put(ctx, item.ID, item); err != nil {
		return item, domain.WrapError(err, errcodes.LedgerWriteFailed,
			fmt.Sprintf("mark inventory item %s sold", item.ID))
	}

	return item, nil
}
