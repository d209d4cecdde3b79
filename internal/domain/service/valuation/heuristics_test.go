package valuation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"flipper/internal/domain/entity"
)

func TestHistoricalScore(t *testing.T) {
	ref := entity.HistoricalReference{Average: 650, Min: 400, Max: 1200, MSRP: 999}

	t.Run("anchors", func(t *testing.T) {
		rq := require.New(t)

		rq.InDelta(100, HistoricalScore(ref.Min, ref), 1e-9)
		rq.InDelta(0, HistoricalScore(ref.Max, ref), 1e-9)
		rq.InDelta(100, HistoricalScore(100, ref), 1e-9)
		rq.InDelta(0, HistoricalScore(5000, ref), 1e-9)
		rq.InDelta(50, HistoricalScore(800, ref), 1e-9)
	})

	t.Run("monotonic between min and max", func(t *testing.T) {
		prev := HistoricalScore(ref.Min, ref)
		for p := ref.Min; p <= ref.Max; p += 7.5 {
			score := HistoricalScore(p, ref)
			require.LessOrEqual(t, score, prev)
			prev = score
		}
	})

	t.Run("degenerate range", func(t *testing.T) {
		flat := entity.HistoricalReference{Min: 300, Max: 300}
		require.InDelta(t, 100, HistoricalScore(450, flat), 1e-9)
	})
}

func TestMSRPScore(t *testing.T) {
	testCases := []struct {
		name  string
		price float64
		msrp  float64
		want  float64
	}{
		{name: "half msrp", price: 500, msrp: 1000, want: 100},
		{name: "below half", price: 100, msrp: 1000, want: 100},
		{name: "three quarters", price: 750, msrp: 1000, want: 50},
		{name: "at msrp", price: 1000, msrp: 1000, want: 0},
		{name: "above msrp", price: 1500, msrp: 1000, want: 0},
		{name: "unknown msrp", price: 100, msrp: 0, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, MSRPScore(tc.price, tc.msrp), 1e-9)
		})
	}
}

func TestScarcityScore(t *testing.T) {
	testCases := []struct {
		title string
		want  float64
	}{
		{title: "Limited Edition Sneakers", want: 100},
		{title: "RARE vinyl", want: 100},
		{title: "Galaxy S24 Ultra", want: 100},
		{title: "iPhone 15 Pro Max limited rare", want: 100},
		{title: "Plain office chair", want: 50},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			require.InDelta(t, tc.want, ScarcityScore(tc.title), 1e-9)
		})
	}
}

func TestRatioScore(t *testing.T) {
	rq := require.New(t)

	rq.InDelta(100, RatioScore(700, 1000), 1e-9)
	rq.InDelta(100, RatioScore(300, 1000), 1e-9)
	rq.InDelta(0, RatioScore(1000, 1000), 1e-9)
	rq.InDelta(0, RatioScore(1200, 1000), 1e-9)
	rq.InDelta(50, RatioScore(850, 1000), 1e-6)
	rq.InDelta(0, RatioScore(100, 0), 1e-9)
}
