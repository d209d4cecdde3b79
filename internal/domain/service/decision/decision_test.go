package decision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

func evaluated(id string, price, resale, score float64) entity.EvaluatedListing {
	profit := resale - price
	return entity.EvaluatedListing{
		Listing: entity.Listing{
			ID:          id,
			Title:       "item " + id,
			Price:       price,
			Marketplace: value.MarketplaceEbay,
			Category:    "electronics",
		},
		TotalScore:           score,
		EstimatedResaleValue: resale,
		ProfitPotential:      profit,
		ProfitMargin:         profit / price,
	}
}

func newEngine() *Engine {
	return NewEngine().WithClock(func() time.Time { return fixedNow })
}

func TestEngine_Decide_Checks(t *testing.T) {
	testCases := []struct {
		name      string
		purchased []string
		budget    float64
		item      entity.EvaluatedListing
		action    value.Action
		reason    string
	}{
		{
			name:      "already purchased wins over a perfect score",
			purchased: []string{"a"},
			budget:    1000,
			item:      evaluated("a", 400, 650, 100),
			action:    value.ActionSkip,
			reason:    "already purchased",
		},
		{
			name:   "over budget",
			budget: 250,
			item:   evaluated("a", 400, 650, 100),
			action: value.ActionSkip,
			reason: "price $400.00 exceeds remaining budget $250.00",
		},
		{
			name:   "margin too low",
			budget: 1000,
			item:   evaluated("a", 400, 440, 90),
			action: value.ActionSkip,
			reason: "profit margin 10.0% below required 20.0%",
		},
		{
			name:   "profit too low",
			budget: 1000,
			item:   evaluated("a", 100, 140, 90),
			action: value.ActionSkip,
			reason: "profit $40.00 below required minimum $50.00",
		},
		{
			name:   "buy",
			budget: 1000,
			item:   evaluated("a", 400, 650, 100),
			action: value.ActionBuy,
			reason: "expected profit $250.00 (62.5% margin), score 100.0/100",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			state := entity.NewAgentState(tc.budget)
			for _, id := range tc.purchased {
				state.PurchasedIDs[id] = struct{}{}
			}

			decisions := newEngine().Decide(state, []entity.EvaluatedListing{tc.item}, value.DefaultThresholds())
			rq.Len(decisions, 1)
			rq.Equal(tc.action, decisions[0].Action)
			rq.Equal(tc.reason, decisions[0].Reasoning)
			rq.Equal(fixedNow, decisions[0].Timestamp)
		})
	}
}

func TestEngine_Decide_BuySideEffects(t *testing.T) {
	rq := require.New(t)

	state := entity.NewAgentState(1000)

	decisions := newEngine().Decide(state, []entity.EvaluatedListing{
		evaluated("a", 400, 650, 100),
	}, value.DefaultThresholds())

	rq.True(decisions[0].IsBuy())
	rq.True(state.IsPurchased("a"))
	rq.InDelta(600, state.RemainingBudget, 1e-9)
	rq.Equal(1, state.Stats.ItemsPurchased)
	rq.InDelta(400, state.Stats.TotalInvested, 1e-9)
	rq.InDelta(250, state.Stats.ExpectedProfit, 1e-9)
	rq.InDelta(650, state.Stats.PotentialRevenue, 1e-9)
	rq.InDelta(62.5, state.Stats.ROI, 1e-9)
}

func TestEngine_Decide_SkipHasNoSideEffects(t *testing.T) {
	rq := require.New(t)

	state := entity.NewAgentState(1000)
	before := *state

	newEngine().Decide(state, []entity.EvaluatedListing{
		evaluated("a", 400, 420, 40),
	}, value.DefaultThresholds())

	rq.Equal(before.RemainingBudget, state.RemainingBudget)
	rq.Equal(before.Stats, state.Stats)
	rq.False(state.IsPurchased("a"))
}

func TestEngine_Decide_BudgetIsConsumedGreedily(t *testing.T) {
	rq := require.New(t)

	state := entity.NewAgentState(500)

	decisions := newEngine().Decide(state, []entity.EvaluatedListing{
		evaluated("a", 300, 450, 90),
		evaluated("b", 300, 450, 80),
	}, value.DefaultThresholds())

	buys := 0
	for _, d := range decisions {
		if d.IsBuy() {
			buys++
		}
	}
	rq.Equal(1, buys)
	rq.Equal(value.ActionBuy, decisions[0].Action)
	rq.Equal("price $300.00 exceeds remaining budget $200.00", decisions[1].Reasoning)
}

func TestEngine_Decide_DuplicateInBatch(t *testing.T) {
	rq := require.New(t)

	state := entity.NewAgentState(5000)

	decisions := newEngine().Decide(state, []entity.EvaluatedListing{
		evaluated("a", 300, 450, 90),
		evaluated("a", 300, 450, 90),
	}, value.DefaultThresholds())

	rq.Equal(value.ActionBuy, decisions[0].Action)
	rq.Equal(value.ActionSkip, decisions[1].Action)
	rq.Equal("already purchased", decisions[1].Reasoning)
	rq.Equal(1, state.Stats.ItemsPurchased)
}

func TestEngine_Decide_Empty(t *testing.T) {
	decisions := newEngine().Decide(entity.NewAgentState(100), nil, value.DefaultThresholds())
	require.Empty(t, decisions)
}
