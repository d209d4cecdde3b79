package entity

import (
	"time"

	"flipper/internal/domain/value"
)

// Transaction is an append-only ledger entry.
type Transaction struct {
	ID        string                `json:"id"`
	Type      value.TransactionType `json:"type"`
	ListingID string                `json:"item_id"`
	Amount    float64               `json:"amount"`
	Timestamp time.Time             `json:"timestamp"`
}

// FinancialStats are derived from the transaction log. ExpectedROI is a fraction.
type FinancialStats struct {
	TotalInvested    float64 `json:"total_invested"`
	PotentialRevenue float64 `json:"potential_revenue"`
	ExpectedProfit   float64 `json:"expected_profit"`
	ExpectedROI      float64 `json:"expected_roi"`
	Purchases        int     `json:"purchases"`
	Sales            int     `json:"sales"`
}
