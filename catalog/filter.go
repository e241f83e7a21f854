package catalog

import (
	"strings"

	"github.com/fitgear/fitgear-api/models"
)

type Category string

const (
	CategoryGear        Category = "gear"
	CategoryTrainers    Category = "trainers"
	CategorySupplements Category = "supplements"
	CategoryAccessories Category = "accessories"

	// All matches every product whose category is known.
	All Category = "all"
)

var categories = []Category{CategoryGear, CategoryTrainers, CategorySupplements, CategoryAccessories}

// Categories returns the fixed product categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ValidCategory(c string) bool {
	for _, known := range categories {
		if string(known) == c {
			return true
		}
	}
	return false
}

// Criteria selects a subset of the catalog. The zero value matches every
// product with a known category. A nil MaxPrice leaves the range unbounded.
type Criteria struct {
	Category Category
	Search   string
	MinPrice int64
	MaxPrice *int64
}

// FromQuery converts bound query parameters into filter criteria.
func FromQuery(q models.ProductQuery) Criteria {
	c := Criteria{
		Category: Category(q.Category),
		Search:   q.Search,
		MaxPrice: q.MaxPrice,
	}
	if c.Category == "" {
		c.Category = All
	}
	if q.MinPrice != nil {
		c.MinPrice = *q.MinPrice
	}
	return c
}

// Apply returns the products matching all three predicates, in catalog order.
// The input slice is not modified.
func Apply(products []models.Product, c Criteria) []models.Product {
	needle := strings.ToLower(c.Search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, c.Category) {
			continue
		}
		if !matchesText(p, needle) {
			continue
		}
		if !matchesPrice(p, c.MinPrice, c.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesCategory(p models.Product, selected Category) bool {
	if !ValidCategory(p.Category) {
		return false
	}
	if selected == "" || selected == All {
		return true
	}
	return p.Category == string(selected)
}

func matchesText(p models.Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

func matchesPrice(p models.Product, min int64, max *int64) bool {
	if p.Price < min {
		return false
	}
	return max == nil || p.Price <= *max
}
