package catalog

import (
	"testing"

	"github.com/fitgear/fitgear-api/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_DefaultCatalog(t *testing.T) {
	meta := Summarize(DefaultProducts())

	assert.Equal(t, 10, meta.Total)
	assert.Equal(t, PriceRange{Min: 2999, Max: 35999}, meta.PriceRange)
	assert.Equal(t, []CategoryCount{
		{Category: CategoryGear, Count: 2},
		{Category: CategoryTrainers, Count: 2},
		{Category: CategorySupplements, Count: 3},
		{Category: CategoryAccessories, Count: 3},
	}, meta.Categories)
}

func TestSummarize_SkipsUnknownCategories(t *testing.T) {
	meta := Summarize([]models.Product{
		{ID: "a", Category: "gear", Price: 500},
		{ID: "b", Category: "toys", Price: 1},
	})

	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, PriceRange{Min: 500, Max: 500}, meta.PriceRange)
}

func TestSummarize_Empty(t *testing.T) {
	meta := Summarize(nil)

	assert.Zero(t, meta.Total)
	assert.Len(t, meta.Categories, 4)
	assert.Equal(t, PriceRange{}, meta.PriceRange)
}
