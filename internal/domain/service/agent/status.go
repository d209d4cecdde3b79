package agent

import (
	"context"
	"time"

	"github.com/samber/lo"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
	"flipper/pkg/logx"
)

type Status struct {
	Budget          float64                       `json:"budget"`
	RemainingBudget float64                       `json:"remaining_budget"`
	Stats           entity.AgentStats             `json:"stats"`
	Financials      entity.FinancialStats         `json:"financials"`
	Inventory       map[value.InventoryStatus]int `json:"inventory"`
	Thresholds      value.Thresholds              `json:"thresholds"`
	UpdatedAt       time.Time                     `json:"updated_at"`
}

// ConfigUpdate replaces the budget, profit thresholds and default scan parameters.
type ConfigUpdate struct {
	Budget            float64
	MinProfitMargin   float64
	MinProfit         float64
	MaxPerMarketplace int
	Category          string
}

func (a *Agent) Status(ctx context.Context) Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.loadLocked(ctx)

	return Status{
		Budget:          state.Budget,
		RemainingBudget: state.RemainingBudget,
		Stats:           state.Stats,
		Financials:      a.transactions.FinancialStats(ctx),
		Inventory:       a.inventory.CountByStatus(ctx),
		Thresholds:      a.settings.Thresholds,
		UpdatedAt:       state.UpdatedAt,
	}
}

// Configure applies a config update. Money already invested stays spent, so
// the remaining budget is the new budget minus the total invested.
func (a *Agent) Configure(ctx context.Context, upd ConfigUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.loadLocked(ctx)
	state.SetBudget(upd.Budget)

	a.settings.Budget = upd.Budget
	a.settings.Thresholds.MinProfitMargin = upd.MinProfitMargin
	a.settings.Thresholds.MinProfit = upd.MinProfit
	a.settings.MaxPerMarketplace = upd.MaxPerMarketplace
	a.settings.Category = upd.Category

	a.evaluator.SetThresholds(a.settings.Thresholds)

	if err := a.saveLocked(ctx); err != nil {
		return err
	}

	logger(ctx).Info("agent configured",
		logx.FieldBudget, upd.Budget,
		"min-profit-margin", upd.MinProfitMargin,
		"min-profit", upd.MinProfit,
	)

	return nil
}

func (a *Agent) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

func (a *Agent) Inventory(ctx context.Context) []entity.InventoryItem {
	return a.inventory.List(ctx)
}

func (a *Agent) Transactions(ctx context.Context) []entity.Transaction {
	return a.transactions.List(ctx)
}

// MarkSold closes the lifecycle of a listed inventory item and withdraws its
// resale listing from the stored snapshots.
func (a *Agent) MarkSold(ctx context.Context, id string, price float64) (entity.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	item, err := a.inventory.MarkSold(ctx, id, price)
	if err != nil {
		return item, err
	}

	resaleID := entity.ResaleListingID(item.ID)
	if err := a.listings.Delete(ctx, resaleID); err != nil {
		logger(ctx).Warn("resale listing not withdrawn",
			logx.FieldListingID, resaleID,
			logx.Error(err),
		)
	}

	return item, nil
}

// QueryListings filters the stored listing snapshots. An empty filter returns all of them.
func (a *Agent) QueryListings(ctx context.Context, filter entity.ListingFilter) []entity.Listing {
	return lo.Filter(a.listings.All(ctx), func(l entity.Listing, _ int) bool {
		return filter.Match(l)
	})
}
