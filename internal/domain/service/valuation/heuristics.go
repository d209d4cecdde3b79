package valuation

import (
	"strings"

	"flipper/internal/domain/entity"
)

const (
	msrpFullScoreRatio  = 0.5
	priceFullScoreRatio = 0.7
	scarcityHit         = 100.0
	scarcityMiss        = 50.0
)

var scarcityKeywords = []string{"limited", "rare", "discontinued", "pro", "max", "ultra"} //nolint:gochecknoglobals

// HistoricalScore interpolates linearly from the reference min (100) to max (0).
func HistoricalScore(price float64, ref entity.HistoricalReference) float64 {
	// min == max is degenerate and scores full.
	if ref.Min >= ref.Max || price <= ref.Min {
		return 100
	}
	if price >= ref.Max {
		return 0
	}

	return clamp(100 * (1 - (price-ref.Min)/(ref.Max-ref.Min)))
}

// MSRPScore is 100 at half the MSRP or below and 0 at the MSRP or above.
// An unknown (zero) MSRP scores 0.
func MSRPScore(price, msrp float64) float64 {
	if msrp <= 0 {
		return 0
	}

	ratio := price / msrp
	return clamp(100 * (1 - (ratio-msrpFullScoreRatio)/(1-msrpFullScoreRatio)))
}

// ScarcityScore is binary: any scarcity keyword gives 100, otherwise 50.
func ScarcityScore(title string) float64 {
	lower := strings.ToLower(title)
	for _, keyword := range scarcityKeywords {
		if strings.Contains(lower, keyword) {
			return scarcityHit
		}
	}
	return scarcityMiss
}

// RatioScore is 100 at 70% of the historical average or below and 0 at the average.
func RatioScore(price, average float64) float64 {
	if average <= 0 {
		return 0
	}

	ratio := price / average
	return clamp(100 * (1 - (ratio-priceFullScoreRatio)/(1-priceFullScoreRatio)))
}

func clamp(score float64) float64 {
	return max(0, min(100, score))
}
