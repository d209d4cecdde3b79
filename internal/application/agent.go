package application

import (
	"context"
	"fmt"
	"time"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/service/agent"
	"flipper/internal/domain/service/decision"
	"flipper/internal/domain/service/ledger"
	"flipper/internal/domain/service/valuation"
	"flipper/internal/infrastructure/persistence"
	"flipper/internal/infrastructure/reference"
	"flipper/internal/infrastructure/source"
)

type AgentOptions struct {
	Settings    agent.Settings
	Concurrency int
	Publisher   agent.Publisher
	Recorder    agent.Recorder

	// ReferenceTTL is how long reference lookups stay cached. Zero keeps the default.
	ReferenceTTL time.Duration
}

// BuildAgent wires the agent over a key/value store: seeded references, one
// mock source per marketplace, the engines and the ledger. The returned agent
// has its persisted state loaded.
func BuildAgent(ctx context.Context, store persistence.KeyValueStore, opts AgentOptions) (*agent.Agent, error) {
	refs := reference.NewStore(persistence.NewBucket[entity.HistoricalReference](store, persistence.BucketReferences))

	if opts.ReferenceTTL > 0 {
		refs = refs.WithTTL(opts.ReferenceTTL)
	}

	catalog := reference.DefaultCatalog()
	if err := refs.Seed(ctx, catalog); err != nil {
		return nil, fmt.Errorf("refs.Seed: %w", err)
	}

	mocks := source.All(catalog)
	sources := make([]agent.ListingSource, 0, len(mocks))
	for _, m := range mocks {
		sources = append(sources, m)
	}

	evaluator := valuation.NewEngine(refs, opts.Settings.Thresholds)
	if opts.Concurrency > 0 {
		evaluator = evaluator.WithConcurrency(opts.Concurrency)
	}

	a := agent.New(
		opts.Settings,
		sources,
		evaluator,
		decision.NewEngine(),
		ledger.NewTransactions(persistence.NewBucket[entity.Transaction](store, persistence.BucketTransactions)),
		ledger.NewInventory(persistence.NewBucket[entity.InventoryItem](store, persistence.BucketInventory)),
		persistence.NewBucket[entity.AgentState](store, persistence.BucketAgent),
		persistence.NewBucket[entity.Listing](store, persistence.BucketListings),
	)

	if opts.Publisher != nil {
		a = a.WithPublisher(opts.Publisher)
	}
	if opts.Recorder != nil {
		a = a.WithRecorder(opts.Recorder)
	}

	a.Load(ctx)

	return a, nil
}
