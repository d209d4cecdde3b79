package entity

import (
	"time"

	"flipper/internal/domain/value"
)

type Decision struct {
	Action          value.Action `json:"action"`
	ListingID       string       `json:"item_id"`
	Title           string       `json:"title"`
	Price           float64      `json:"price"`
	Score           float64      `json:"score"`
	ProfitPotential float64      `json:"profit_potential"`
	Reasoning       string       `json:"reasoning"`
	Timestamp       time.Time    `json:"timestamp"`
}

func (d Decision) IsBuy() bool {
	return d.Action == value.ActionBuy
}
