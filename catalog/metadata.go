package catalog

import "github.com/fitgear/fitgear-api/models"

type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterMetadata drives the storefront filter sidebar.
type FilterMetadata struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
	PriceRange PriceRange      `json:"priceRange"`
}

// Summarize counts products per known category, in display order, and finds
// the price bounds. Products with an unknown category are ignored.
func Summarize(products []models.Product) FilterMetadata {
	counts := make(map[Category]int, len(categories))
	meta := FilterMetadata{}
	for _, p := range products {
		if !ValidCategory(p.Category) {
			continue
		}
		counts[Category(p.Category)]++
		if meta.Total == 0 || p.Price < meta.PriceRange.Min {
			meta.PriceRange.Min = p.Price
		}
		if p.Price > meta.PriceRange.Max {
			meta.PriceRange.Max = p.Price
		}
		meta.Total++
	}

	meta.Categories = make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		meta.Categories = append(meta.Categories, CategoryCount{Category: c, Count: counts[c]})
	}
	return meta
}
