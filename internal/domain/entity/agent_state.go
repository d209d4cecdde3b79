package entity

import (
	"encoding/json"
	"slices"
	"time"
)

// AgentStats are the cumulative counters of an agent session.
type AgentStats struct {
	ListingsScanned  int     `json:"listings_scanned"`
	ItemsPurchased   int     `json:"items_purchased"`
	ItemsListed      int     `json:"items_listed"`
	TotalInvested    float64 `json:"total_invested"`
	ExpectedProfit   float64 `json:"expected_profit"`
	PotentialRevenue float64 `json:"potential_revenue"`
	ROI              float64 `json:"roi"`
}

// AgentState is the only mutable entity of the core. PurchasedIDs only grows.
type AgentState struct {
	Budget          float64
	RemainingBudget float64
	PurchasedIDs    map[string]struct{}
	Stats           AgentStats
	UpdatedAt       time.Time
}

func NewAgentState(budget float64) *AgentState {
	return &AgentState{
		Budget:          budget,
		RemainingBudget: budget,
		PurchasedIDs:    make(map[string]struct{}),
	}
}

func (s *AgentState) IsPurchased(listingID string) bool {
	_, ok := s.PurchasedIDs[listingID]
	return ok
}

// ApplyBuy records a BUY: marks the listing purchased, spends the budget and
// updates the cumulative stats and running ROI (percent).
func (s *AgentState) ApplyBuy(listingID string, price, profitPotential float64) {
	if s.PurchasedIDs == nil {
		s.PurchasedIDs = make(map[string]struct{})
	}

	s.PurchasedIDs[listingID] = struct{}{}
	s.RemainingBudget -= price

	s.Stats.ItemsPurchased++
	s.Stats.TotalInvested += price
	s.Stats.ExpectedProfit += profitPotential
	s.Stats.PotentialRevenue += price + profitPotential

	s.Stats.ROI = 0
	if s.Stats.TotalInvested > 0 {
		s.Stats.ROI = s.Stats.ExpectedProfit / s.Stats.TotalInvested * 100
	}
}

// SetBudget changes the total budget. Money already invested stays spent.
func (s *AgentState) SetBudget(budget float64) {
	s.Budget = budget
	s.RemainingBudget = max(0, budget-s.Stats.TotalInvested)
}

type agentStateJSON struct {
	Budget          float64    `json:"budget"`
	RemainingBudget float64    `json:"remaining_budget"`
	PurchasedIDs    []string   `json:"purchased_ids"`
	Stats           AgentStats `json:"stats"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (s AgentState) MarshalJSON() ([]byte, error) {
	ids := make([]string, 0, len(s.PurchasedIDs))
	for id := range s.PurchasedIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return json.Marshal(agentStateJSON{
		Budget:          s.Budget,
		RemainingBudget: s.RemainingBudget,
		PurchasedIDs:    ids,
		Stats:           s.Stats,
		UpdatedAt:       s.UpdatedAt,
	})
}

func (s *AgentState) UnmarshalJSON(data []byte) error {
	var raw agentStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Budget = raw.Budget
	s.RemainingBudget = raw.RemainingBudget
	s.Stats = raw.Stats
	s.UpdatedAt = raw.UpdatedAt
	s.PurchasedIDs = make(map[string]struct{}, len(raw.PurchasedIDs))
	for _, id := range raw.PurchasedIDs {
		s.PurchasedIDs[id] = struct{}{}
	}

	return nil
}
