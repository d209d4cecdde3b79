package valuation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"flipper/internal/domain"
	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
	"flipper/pkg/contextx"
	"flipper/pkg/errcodes"
	"flipper/pkg/logx"
)

const defaultConcurrency = 8

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ReferenceStore interface {
	Lookup(ctx context.Context, productKey string) entity.HistoricalReference
}

type Engine struct {
	refs        ReferenceStore
	weights     value.Weights
	concurrency int

	mu         sync.RWMutex
	thresholds value.Thresholds
}

func NewEngine(refs ReferenceStore, thresholds value.Thresholds) *Engine {
	return &Engine{
		refs:        refs,
		weights:     value.DefaultWeights(),
		concurrency: defaultConcurrency,
		thresholds:  thresholds,
	}
}

func (e *Engine) WithConcurrency(n int) *Engine {
	if n > 0 {
		e.concurrency = n
	}
	return e
}

func (e *Engine) Thresholds() value.Thresholds {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.thresholds
}

func (e *Engine) SetThresholds(t value.Thresholds) {
	e.mu.Lock()
	e.thresholds = t
	e.mu.Unlock()
}

// Evaluate scores a single listing against its historical reference.
func (e *Engine) Evaluate(ctx context.Context, listing entity.Listing) (entity.EvaluatedListing, error) {
	if listing.Price <= 0 {
		return entity.EvaluatedListing{}, domain.NewError(
			errcodes.InvalidPrice,
			fmt.Sprintf("listing %q has non-positive price %.2f", listing.ID, listing.Price),
		)
	}

	key := ExtractProductKey(listing.Title)
	ref := e.refs.Lookup(ctx, key)

	scores := entity.Scores{
		Historical: HistoricalScore(listing.Price, ref),
		MSRP:       MSRPScore(listing.Price, ref.MSRP),
		Scarcity:   ScarcityScore(listing.Title),
		Ratio:      RatioScore(listing.Price, ref.Average),
	}

	total := scores.Historical*e.weights.Historical +
		scores.MSRP*e.weights.MSRP +
		scores.Scarcity*e.weights.Scarcity +
		scores.Ratio*e.weights.Ratio

	resale := ref.Average
	profit := resale - listing.Price
	margin := profit / listing.Price

	t := e.Thresholds()

	return entity.EvaluatedListing{
		Listing:              listing,
		ProductKey:           key,
		IsUndervalued:        total >= t.MinScore && margin >= t.MinProfitMargin && profit >= t.MinProfit,
		TotalScore:           total,
		EstimatedResaleValue: resale,
		ProfitPotential:      profit,
		ProfitMargin:         margin,
		Scores:               scores,
		Reasoning:            reasoning(scores, margin),
	}, nil
}

// EvaluateListings evaluates listings concurrently and returns them sorted by
// score, highest first. Equal scores keep their input order.
func (e *Engine) EvaluateListings(ctx context.Context, listings []entity.Listing) ([]entity.EvaluatedListing, error) {
	if len(listings) == 0 {
		return []entity.EvaluatedListing{}, nil
	}

	out := make([]entity.EvaluatedListing, len(listings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i := range listings {
		g.Go(func() error {
			evaluated, err := e.Evaluate(gctx, listings[i])
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", listings[i].ID, err)
			}
			out[i] = evaluated
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})

	undervalued := 0
	for _, ev := range out {
		if ev.IsUndervalued {
			undervalued++
		}
	}
	logger(ctx).Debug("listings evaluated",
		logx.FieldCount, len(out),
		"undervalued", undervalued,
	)

	return out, nil
}

func reasoning(scores entity.Scores, margin float64) string {
	var reasons []string

	if scores.Historical > 60 {
		reasons = append(reasons, "price is well below the historical range")
	}
	if scores.MSRP > 60 {
		reasons = append(reasons, "deep discount from MSRP")
	}
	if scores.Scarcity > 70 {
		reasons = append(reasons, "scarcity or high-demand keywords")
	}
	if margin >= 0.30 {
		reasons = append(reasons, fmt.Sprintf("excellent profit margin (%.0f%%)", margin*100))
	}

	if len(reasons) == 0 {
		return "price is close to market average"
	}

	return strings.Join(reasons, "; ")
}
