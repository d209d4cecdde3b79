package server

import (
	"fmt"
	"net/url"
	"strconv"

	"flipper/internal/domain"
	"flipper/internal/domain/entity"
	"flipper/internal/domain/service/agent"
	"flipper/internal/domain/value"
	"flipper/pkg/errcodes"
	"flipper/pkg/rest"
)

func newScanRequest(body rest.ScanRequest) agent.ScanRequest {
	return agent.ScanRequest{
		MaxPerMarketplace: *body.MaxPerMarketplace,
		Category:          *body.Category,
	}
}

func newRESTScanResponse(result agent.ScanResult) rest.ScanResponse {
	return rest.ScanResponse{
		Listings:  result.Listings,
		Evaluated: result.Evaluated,
		Decisions: result.Decisions,
		Relisted:  result.Relisted,
	}
}

func newConfigUpdate(body rest.ConfigRequest) agent.ConfigUpdate {
	return agent.ConfigUpdate{
		Budget:            *body.Budget,
		MinProfitMargin:   *body.MinProfitMargin,
		MinProfit:         *body.MinProfit,
		MaxPerMarketplace: *body.MaxPerMarketplace,
		Category:          *body.Category,
	}
}

func newListingFilter(q url.Values) (entity.ListingFilter, error) {
	var filter entity.ListingFilter

	if m := q.Get("marketplace"); m != "" {
		marketplace, err := value.ParseMarketplace(m)
		if err != nil {
			return filter, domain.WrapError(err, errcodes.ValidationError, "invalid marketplace")
		}
		filter.Marketplace = marketplace
	}

	filter.Category = q.Get("category")

	var err error
	if filter.MinPrice, err = parsePrice(q, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parsePrice(q, "maxPrice"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parsePrice(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 {
		return 0, domain.NewError(errcodes.ValidationError, fmt.Sprintf("invalid %s %q", name, raw))
	}

	return price, nil
}
