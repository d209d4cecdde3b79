package entity

import (
	"time"

	"flipper/internal/domain/value"
)

type InventoryItem struct {
	EvaluatedListing

	PurchaseDate time.Time             `json:"purchase_date"`
	Status       value.InventoryStatus `json:"status"`
	ResalePrice  *float64              `json:"resale_price,omitempty"`
	ListedDate   *time.Time            `json:"listed_date,omitempty"`
	SoldDate     *time.Time            `json:"sold_date,omitempty"`
}

// SaleAmount is the explicit resale price when set, else the estimated resale value.
func (i InventoryItem) SaleAmount() float64 {
	if i.ResalePrice != nil {
		return *i.ResalePrice
	}
	return i.EstimatedResaleValue
}

// ResaleListingID is the id of the resale offer for a purchased listing.
func ResaleListingID(listingID string) string {
	return "resale_" + listingID
}

// Relisting builds the resale offer for this item.
func (i InventoryItem) Relisting(now time.Time) Listing {
	return Listing{
		ID:          ResaleListingID(i.ID),
		Title:       i.Title,
		Price:       i.EstimatedResaleValue,
		Marketplace: i.Marketplace,
		Category:    i.Category,
		URL:         i.URL,
		ObservedAt:  now,
	}
}
