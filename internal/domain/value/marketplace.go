package value

import "fmt"

type Marketplace string

const (
	MarketplaceEbay       Marketplace = "ebay"
	MarketplaceCraigslist Marketplace = "craigslist"
	MarketplaceFacebook   Marketplace = "facebook"
)

// Marketplaces lists every supported marketplace in scan order.
func Marketplaces() []Marketplace {
	return []Marketplace{MarketplaceCraigslist, MarketplaceEbay, MarketplaceFacebook}
}

func (m Marketplace) String() string {
	return string(m)
}

func (m Marketplace) IsValid() bool {
	switch m {
	case MarketplaceEbay, MarketplaceCraigslist, MarketplaceFacebook:
		return true
	default:
		return false
	}
}

func ParseMarketplace(s string) (Marketplace, error) {
	m := Marketplace(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown marketplace %q", s)
	}
	return m, nil
}
