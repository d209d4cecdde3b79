package valuation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractProductKey(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{name: "keyword", title: "iPhone 15 Pro 256GB", want: "iphone"},
		{name: "case insensitive", title: "Apple MACBOOK Air", want: "macbook"},
		{name: "list order beats title position", title: "TV stand that fits a laptop", want: "laptop"},
		{name: "first match only", title: "PS5 with Xbox controller", want: "ps5"},
		{name: "first token fallback", title: "Vintage Guitar Amp", want: "vintage"},
		{name: "empty", title: "", want: "unknown"},
		{name: "blank", title: "   ", want: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractProductKey(tc.title))
		})
	}
}
