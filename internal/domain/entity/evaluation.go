package entity

// Scores holds the per-heuristic scores, each in [0, 100].
type Scores struct {
	Historical float64 `json:"historical"`
	MSRP       float64 `json:"msrp"`
	Scarcity   float64 `json:"scarcity"`
	Ratio      float64 `json:"ratio"`
}

// EvaluatedListing is a Listing with its valuation. ProfitMargin is a fraction
// of the price (0.25 means 25%).
type EvaluatedListing struct {
	Listing

	ProductKey           string  `json:"product_key"`
	IsUndervalued        bool    `json:"is_undervalued"`
	TotalScore           float64 `json:"score"`
	EstimatedResaleValue float64 `json:"estimated_resale"`
	ProfitPotential      float64 `json:"profit_potential"`
	ProfitMargin         float64 `json:"profit_margin"`
	Scores               Scores  `json:"scores_breakdown"`
	Reasoning            string  `json:"reasoning"`
}
