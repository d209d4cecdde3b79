package agent

import (
	"context"
	"fmt"

	"flipper/internal/domain"
	"flipper/internal/domain/entity"
	"flipper/pkg/errcodes"
	"flipper/pkg/logx"
)

// Relist creates resale offers for every purchased item and records the
// expected sale for each.
func (a *Agent) Relist(ctx context.Context) ([]entity.Listing, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.loadLocked(ctx)

	return a.relistLocked(ctx)
}

func (a *Agent) relistLocked(ctx context.Context) ([]entity.Listing, error) {
	relistings, sweepErr := a.inventory.Relist(ctx)

	out := make([]entity.Listing, 0, len(relistings))

	for _, r := range relistings {
		if err := a.listings.Put(ctx, r.Listing.ID, r.Listing); err != nil {
			logger(ctx).Error("listing snapshot failed",
				logx.FieldListingID, r.Listing.ID,
				logx.Error(err),
			)
		}

		if _, err := a.transactions.RecordSale(ctx, r.Item); err != nil {
			logger(ctx).Error("reconciliation needed",
				logx.FieldListingID, r.Item.ID,
				"status", r.Item.Status.String(),
				logx.Error(err),
			)
			sweepErr = fmt.Errorf("transactions.RecordSale: %w", err)
			break
		}

		out = append(out, r.Listing)
	}

	a.state.Stats.ItemsListed += len(relistings)

	if err := a.saveLocked(ctx); err != nil {
		return out, domain.WrapError(err, errcodes.StorageUnavailable, "save agent state")
	}

	if sweepErr != nil {
		return out, sweepErr
	}

	return out, nil
}
