package source

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
)

func catalog() map[string]entity.HistoricalReference {
	return map[string]entity.HistoricalReference{
		"iphone": {Average: 650, Min: 400, Max: 1200, MSRP: 999},
		"ps5":    {Average: 450, Min: 350, Max: 600, MSRP: 499},
	}
}

func TestMock_Fetch(t *testing.T) {
	rq := require.New(t)

	src := NewMock(value.MarketplaceCraigslist, catalog()).WithSeed(42)

	listings, err := src.Fetch(context.Background(), "electronics", 25)
	rq.NoError(err)
	rq.Len(listings, 25)

	seen := make(map[string]struct{})
	for _, l := range listings {
		rq.NoError(l.Validate())
		rq.True(strings.HasPrefix(l.ID, "craigslist_"))
		rq.Equal(value.MarketplaceCraigslist, l.Marketplace)
		rq.Equal("electronics", l.Category)

		ref := catalog()[strings.ToLower(strings.Fields(l.Title)[0])]
		rq.GreaterOrEqual(l.Price, ref.Average*minPriceFactor-0.01)
		rq.LessOrEqual(l.Price, ref.Average*maxPriceFactor)

		_, dup := seen[l.ID]
		rq.False(dup)
		seen[l.ID] = struct{}{}
	}
}

func TestMock_FetchEdgeCases(t *testing.T) {
	rq := require.New(t)

	src := NewMock(value.MarketplaceEbay, catalog())

	listings, err := src.Fetch(context.Background(), "electronics", 0)
	rq.NoError(err)
	rq.Empty(listings)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx, "electronics", 3)
	rq.ErrorIs(err, context.Canceled)
}

func TestAll(t *testing.T) {
	sources := All(catalog())
	require.Len(t, sources, 3)
	for i, m := range value.Marketplaces() {
		require.Equal(t, m, sources[i].Marketplace())
	}
}
