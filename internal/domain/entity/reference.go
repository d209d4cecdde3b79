package entity

// HistoricalReference holds the reference price points of one product key.
type HistoricalReference struct {
	Average float64 `json:"avg"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	MSRP    float64 `json:"msrp"`
}
