package agent

import (
	"context"
	"fmt"
	"log/slog"

	"flipper/internal/domain"
	"flipper/internal/domain/entity"
	"flipper/pkg/contextx"
	"flipper/pkg/errcodes"
	"flipper/pkg/logx"
)

type ScanRequest struct {
	MaxPerMarketplace int
	Category          string
}

type ScanResult struct {
	Listings  []entity.Listing
	Evaluated []entity.EvaluatedListing
	Decisions []entity.Decision
	Relisted  []entity.Listing
}

func (r ScanResult) Buys() []entity.Decision {
	buys := make([]entity.Decision, 0)
	for _, d := range r.Decisions {
		if d.IsBuy() {
			buys = append(buys, d)
		}
	}
	return buys
}

// Scan runs one fetch, evaluate, decide and record cycle. Zero request fields
// fall back to the configured defaults.
//
// State is saved before the ledger is written. A ledger write failure aborts
// the scan without undoing the state change; it is logged as needing
// reconciliation.
func (a *Agent) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.loadLocked(ctx)

	if req.MaxPerMarketplace <= 0 {
		req.MaxPerMarketplace = a.settings.MaxPerMarketplace
	}
	if req.Category == "" {
		req.Category = a.settings.Category
	}

	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldCategory, req.Category)))

	listings := a.fetchLocked(ctx, req)

	result := ScanResult{
		Listings:  listings,
		Evaluated: []entity.EvaluatedListing{},
		Decisions: []entity.Decision{},
		Relisted:  []entity.Listing{},
	}

	state.Stats.ListingsScanned += len(listings)

	evaluated, err := a.evaluator.EvaluateListings(ctx, listings)
	if err != nil {
		return result, fmt.Errorf("evaluator.EvaluateListings: %w", err)
	}
	result.Evaluated = evaluated

	result.Decisions = a.decider.Decide(state, evaluated, a.settings.Thresholds)

	if err := a.saveLocked(ctx); err != nil {
		// the buys are applied in memory but have no ledger entries
		for _, d := range result.Buys() {
			logger(ctx).Error("reconciliation needed",
				logx.FieldListingID, d.ListingID,
				logx.FieldAction, d.Action.String(),
				logx.FieldPrice, d.Price,
				logx.Error(err),
			)
		}
		return result, domain.WrapError(err, errcodes.StorageUnavailable, "save agent state")
	}

	byID := make(map[string]entity.EvaluatedListing, len(evaluated))
	for _, ev := range evaluated {
		if _, ok := byID[ev.ID]; !ok {
			byID[ev.ID] = ev
		}
	}

	for _, d := range result.Decisions {
		a.recorder.Decision(d.Action)

		if !d.IsBuy() {
			continue
		}

		if err := a.recordPurchaseLocked(ctx, byID[d.ListingID]); err != nil {
			logger(ctx).Error("reconciliation needed",
				logx.FieldListingID, d.ListingID,
				logx.FieldAction, d.Action.String(),
				logx.FieldPrice, d.Price,
				logx.Error(err),
			)
			return result, err
		}

		a.publisher.Publish(ctx, d)
	}

	logger(ctx).Info("scan finished",
		"listings", len(listings),
		"buys", len(result.Buys()),
		"remaining-budget", state.RemainingBudget,
	)

	if a.settings.AutoRelist {
		relisted, err := a.relistLocked(ctx)
		result.Relisted = relisted
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

// fetchLocked concatenates the valid listings of every source. A failing
// source is skipped and invalid listings are dropped one by one.
func (a *Agent) fetchLocked(ctx context.Context, req ScanRequest) []entity.Listing {
	out := make([]entity.Listing, 0, len(a.sources)*req.MaxPerMarketplace)

	for _, src := range a.sources {
		fetched, err := src.Fetch(ctx, req.Category, req.MaxPerMarketplace)
		if err != nil {
			logger(ctx).Warn("listing source failed",
				logx.FieldMarketplace, src.Marketplace().String(),
				logx.Error(err),
			)
			continue
		}

		valid := 0
		for _, l := range fetched {
			if err := l.Validate(); err != nil {
				logger(ctx).Warn("listing rejected",
					logx.FieldListingID, l.ID,
					logx.FieldMarketplace, src.Marketplace().String(),
					logx.Error(err),
				)
				continue
			}

			if err := a.listings.Put(ctx, l.ID, l); err != nil {
				logger(ctx).Error("listing snapshot failed",
					logx.FieldListingID, l.ID,
					logx.Error(err),
				)
			}

			out = append(out, l)
			valid++
		}

		a.recorder.ListingsScanned(src.Marketplace(), valid)
	}

	return out
}

func (a *Agent) recordPurchaseLocked(ctx context.Context, ev entity.EvaluatedListing) error {
	if _, err := a.transactions.RecordPurchase(ctx, ev); err != nil {
		return fmt.Errorf("transactions.RecordPurchase: %w", err)
	}

	if _, err := a.inventory.Add(ctx, ev); err != nil {
		return fmt.Errorf("inventory.Add: %w", err)
	}

	return nil
}
