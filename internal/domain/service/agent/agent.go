package agent

import (
	"context"
	"sync"
	"time"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/service/ledger"
	"flipper/internal/domain/value"
	"flipper/pkg/contextx"
	"flipper/pkg/logx"
)

const stateKey = "state"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ListingSource interface {
	Marketplace() value.Marketplace
	Fetch(ctx context.Context, category string, maxResults int) ([]entity.Listing, error)
}

type Evaluator interface {
	EvaluateListings(ctx context.Context, listings []entity.Listing) ([]entity.EvaluatedListing, error)
	SetThresholds(t value.Thresholds)
}

type Decider interface {
	Decide(state *entity.AgentState, evaluated []entity.EvaluatedListing, t value.Thresholds) []entity.Decision
}

type StateRepository interface {
	Put(ctx context.Context, key string, state entity.AgentState) error
	Get(ctx context.Context, key string) (entity.AgentState, bool)
}

type ListingRepository interface {
	Put(ctx context.Context, key string, listing entity.Listing) error
	All(ctx context.Context) []entity.Listing
	Delete(ctx context.Context, key string) error
}

// Publisher receives BUY decisions. Implementations must not block.
type Publisher interface {
	Publish(ctx context.Context, d entity.Decision)
}

type Recorder interface {
	ListingsScanned(m value.Marketplace, n int)
	Decision(action value.Action)
	RemainingBudget(budget float64)
}

type Settings struct {
	Budget            float64
	Thresholds        value.Thresholds
	MaxPerMarketplace int
	Category          string
	AutoRelist        bool
}

// Agent owns the AgentState. Every operation that reads or mutates the state
// runs under one mutex, so scans, relists and config changes never interleave.
type Agent struct {
	sources      []ListingSource
	evaluator    Evaluator
	decider      Decider
	transactions *ledger.Transactions
	inventory    *ledger.Inventory
	states       StateRepository
	listings     ListingRepository
	publisher    Publisher
	recorder     Recorder
	now          func() time.Time

	mu       sync.Mutex
	settings Settings
	state    *entity.AgentState
}

func New(
	settings Settings,
	sources []ListingSource,
	evaluator Evaluator,
	decider Decider,
	transactions *ledger.Transactions,
	inventory *ledger.Inventory,
	states StateRepository,
	listings ListingRepository,
) *Agent {
	evaluator.SetThresholds(settings.Thresholds)

	return &Agent{
		sources:      sources,
		evaluator:    evaluator,
		decider:      decider,
		transactions: transactions,
		inventory:    inventory,
		states:       states,
		listings:     listings,
		publisher:    nopPublisher{},
		recorder:     nopRecorder{},
		now:          time.Now,
		settings:     settings,
	}
}

func (a *Agent) WithPublisher(p Publisher) *Agent {
	a.publisher = p
	return a
}

func (a *Agent) WithRecorder(r Recorder) *Agent {
	a.recorder = r
	return a
}

func (a *Agent) WithClock(now func() time.Time) *Agent {
	a.now = now
	return a
}

// Load restores the persisted state, or starts a fresh session with the
// configured budget.
func (a *Agent) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = nil
	a.loadLocked(ctx)
}

func (a *Agent) loadLocked(ctx context.Context) *entity.AgentState {
	if a.state != nil {
		return a.state
	}

	if stored, ok := a.states.Get(ctx, stateKey); ok {
		if stored.PurchasedIDs == nil {
			stored.PurchasedIDs = make(map[string]struct{})
		}
		a.state = &stored
		logger(ctx).Info("agent state restored",
			"remaining-budget", stored.RemainingBudget,
			"purchased", len(stored.PurchasedIDs),
		)
	} else {
		a.state = entity.NewAgentState(a.settings.Budget)
		logger(ctx).Info("agent state initialized", logx.FieldBudget, a.settings.Budget)
	}

	a.recorder.RemainingBudget(a.state.RemainingBudget)

	return a.state
}

func (a *Agent) saveLocked(ctx context.Context) error {
	a.state.UpdatedAt = a.now()

	if err := a.states.Put(ctx, stateKey, *a.state); err != nil {
		return err
	}

	a.recorder.RemainingBudget(a.state.RemainingBudget)

	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, entity.Decision) {}

type nopRecorder struct{}

func (nopRecorder) ListingsScanned(value.Marketplace, int) {}
func (nopRecorder) Decision(value.Action)                  {}
func (nopRecorder) RemainingBudget(float64)                {}
