package source

import (
	"context"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/value"
	"flipper/pkg/contextx"
	"flipper/pkg/logx"
)

const (
	minPriceFactor = 0.45
	maxPriceFactor = 1.25
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var baseURLs = map[value.Marketplace]string{ //nolint:gochecknoglobals
	value.MarketplaceEbay:       "https://www.ebay.com/itm/",
	value.MarketplaceCraigslist: "https://sfbay.craigslist.org/ele/",
	value.MarketplaceFacebook:   "https://www.facebook.com/marketplace/item/",
}

var qualifiers = []string{"", "Pro", "Max", "Limited Edition", "Used", "Like New", "Refurbished", "Bundle"} //nolint:gochecknoglobals

// Mock generates plausible listings priced around the reference averages.
// It stands in for a real marketplace integration.
type Mock struct {
	marketplace value.Marketplace
	catalog     map[string]entity.HistoricalReference
	products    []string
	now         func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMock(m value.Marketplace, catalog map[string]entity.HistoricalReference) *Mock {
	// sorted so a seeded rand gives reproducible output
	products := slices.Sorted(maps.Keys(catalog))

	return &Mock{
		marketplace: m,
		catalog:     catalog,
		products:    products,
		now:         time.Now,
		rnd:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec
	}
}

// WithSeed makes the generated titles and prices reproducible.
func (s *Mock) WithSeed(seed uint64) *Mock {
	s.rnd = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec
	return s
}

func (s *Mock) Marketplace() value.Marketplace {
	return s.marketplace
}

func (s *Mock) Fetch(ctx context.Context, category string, maxResults int) ([]entity.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s fetch: %w", s.marketplace, err)
	}
	if maxResults <= 0 || len(s.products) == 0 {
		return []entity.Listing{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	listings := make([]entity.Listing, 0, maxResults)

	for range maxResults {
		key := s.products[s.rnd.IntN(len(s.products))]
		ref := s.catalog[key]

		factor := minPriceFactor + s.rnd.Float64()*(maxPriceFactor-minPriceFactor)
		price := max(1, float64(int(ref.Average*factor*100))/100)

		id := fmt.Sprintf("%s_%s", s.marketplace, xid.New().String())

		listings = append(listings, entity.Listing{
			ID:          id,
			Title:       s.title(key),
			Price:       price,
			Marketplace: s.marketplace,
			Category:    category,
			URL:         baseURLs[s.marketplace] + id,
			ObservedAt:  s.now(),
		})
	}

	logger(ctx).Debug("mock listings generated",
		logx.FieldMarketplace, s.marketplace.String(),
		logx.FieldCount, len(listings),
	)

	return listings, nil
}

func (s *Mock) title(key string) string {
	name := strings.ToUpper(key[:1]) + key[1:]
	q := qualifiers[s.rnd.IntN(len(qualifiers))]
	if q == "" {
		return name
	}
	return name + " " + q
}

// All builds one mock source per supported marketplace.
func All(catalog map[string]entity.HistoricalReference) []*Mock {
	out := make([]*Mock, 0, len(value.Marketplaces()))
	for _, m := range value.Marketplaces() {
		out = append(out, NewMock(m, catalog))
	}
	return out
}
