package value

// Thresholds are the business constants shared by valuation (undervalued
// flag) and decisions (margin and profit checks).
type Thresholds struct {
	MinScore        float64 `json:"min_score"`
	MinProfitMargin float64 `json:"min_profit_margin"`
	MinProfit       float64 `json:"min_profit"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinScore:        60,
		MinProfitMargin: 0.20,
		MinProfit:       50,
	}
}

// Weights of the component scores. They sum to 1.
type Weights struct {
	Historical float64
	MSRP       float64
	Scarcity   float64
	Ratio      float64
}

func DefaultWeights() Weights {
	return Weights{
		Historical: 0.40,
		MSRP:       0.25,
		Scarcity:   0.20,
		Ratio:      0.15,
	}
}
