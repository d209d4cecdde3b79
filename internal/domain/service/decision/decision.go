package decision

import (
	"fmt"
	"time"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
)

const reasonAlreadyPurchased = "already purchased"

type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// WithClock overrides the decision timestamp source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Decide walks evaluated listings in order and decides BUY or SKIP for each.
// A BUY is applied to state before the next listing is looked at, so earlier
// (higher scored) listings can exhaust the budget for later ones.
func (e *Engine) Decide(state *entity.AgentState, evaluated []entity.EvaluatedListing, t value.Thresholds) []entity.Decision {
	decisions := make([]entity.Decision, 0, len(evaluated))

	for _, ev := range evaluated {
		action, reason := check(state, ev, t)

		if action == value.ActionBuy {
			state.ApplyBuy(ev.ID, ev.Price, ev.ProfitPotential)
		}

		decisions = append(decisions, entity.Decision{
			Action:          action,
			ListingID:       ev.ID,
			Title:           ev.Title,
			Price:           ev.Price,
			Score:           ev.TotalScore,
			ProfitPotential: ev.ProfitPotential,
			Reasoning:       reason,
			Timestamp:       e.now(),
		})
	}

	return decisions
}

// check applies the rules in fixed order and stops at the first failure.
func check(state *entity.AgentState, ev entity.EvaluatedListing, t value.Thresholds) (value.Action, string) {
	if state.IsPurchased(ev.ID) {
		return value.ActionSkip, reasonAlreadyPurchased
	}

	if ev.Price > state.RemainingBudget {
		return value.ActionSkip, fmt.Sprintf("price $%.2f exceeds remaining budget $%.2f",
			ev.Price, state.RemainingBudget)
	}

	if ev.ProfitMargin < t.MinProfitMargin {
		return value.ActionSkip, fmt.Sprintf("profit margin %.1f%% below required %.1f%%",
			ev.ProfitMargin*100, t.MinProfitMargin*100)
	}

	if ev.ProfitPotential < t.MinProfit {
		return value.ActionSkip, fmt.Sprintf("profit $%.2f below required minimum $%.2f",
			ev.ProfitPotential, t.MinProfit)
	}

	return value.ActionBuy, fmt.Sprintf("expected profit $%.2f (%.1f%% margin), score %.1f/100",
		ev.ProfitPotential, ev.ProfitMargin*100, ev.TotalScore)
}
