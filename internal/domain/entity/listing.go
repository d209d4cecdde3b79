package entity

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"flipper/internal/domain"
	"flipper/internal/domain/value"
	"flipper/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// Listing is a single offer observed at one marketplace. Immutable once created.
type Listing struct {
	ID          string            `json:"id" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Price       float64           `json:"price" validate:"gt=0"`
	Marketplace value.Marketplace `json:"marketplace" validate:"required,oneof=ebay craigslist facebook"`
	Category    string            `json:"category" validate:"required"`
	URL         string            `json:"url,omitempty"`
	ObservedAt  time.Time         `json:"timestamp"`
}

func (l Listing) Validate() error {
	if err := validate.Struct(l); err != nil {
		return domain.WrapError(err, errcodes.InvalidListing, fmt.Sprintf("invalid listing %q", l.ID))
	}
	return nil
}

// ListingFilter selects stored listings. Zero fields do not filter.
type ListingFilter struct {
	Marketplace value.Marketplace
	Category    string
	MinPrice    float64
	MaxPrice    float64
}

func (f ListingFilter) Match(l Listing) bool {
	if f.Marketplace != "" && l.Marketplace != f.Marketplace {
		return false
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.MinPrice > 0 && l.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && l.Price > f.MaxPrice {
		return false
	}
	return true
}
