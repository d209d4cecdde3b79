package reference

import "flipper/internal/domain/entity"

// DefaultReference is used for product keys missing from the catalog.
func DefaultReference() entity.HistoricalReference {
	return entity.HistoricalReference{Average: 300, Min: 150, Max: 500, MSRP: 400}
}

// DefaultCatalog is the static reference table seeded on startup.
func DefaultCatalog() map[string]entity.HistoricalReference {
	return map[string]entity.HistoricalReference{
		"iphone":     {Average: 650, Min: 400, Max: 1200, MSRP: 999},
		"macbook":    {Average: 900, Min: 600, Max: 1500, MSRP: 1299},
		"ps5":        {Average: 450, Min: 350, Max: 600, MSRP: 499},
		"xbox":       {Average: 400, Min: 300, Max: 550, MSRP: 499},
		"ipad":       {Average: 550, Min: 300, Max: 900, MSRP: 799},
		"laptop":     {Average: 700, Min: 400, Max: 1200, MSRP: 999},
		"tv":         {Average: 400, Min: 200, Max: 800, MSRP: 599},
		"camera":     {Average: 500, Min: 300, Max: 900, MSRP: 799},
		"switch":     {Average: 275, Min: 200, Max: 350, MSRP: 299},
		"airpods":    {Average: 150, Min: 100, Max: 200, MSRP: 179},
		"watch":      {Average: 350, Min: 250, Max: 500, MSRP: 429},
		"headphones": {Average: 225, Min: 150, Max: 350, MSRP: 299},
	}
}
