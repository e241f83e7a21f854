package cache

import (
	"testing"

	"github.com/fitgear/fitgear-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCache(t *testing.T) {
	InvalidateCatalog()
	_, ok := GetProducts()
	require.False(t, ok)

	products := []models.Product{{ID: "1", Name: "Gym Bag"}, {ID: "2", Name: "Yoga Mat"}}
	SetProducts(products)
	products[0].Name = "changed by caller"

	got, ok := GetProducts()
	require.True(t, ok)
	assert.Equal(t, "Gym Bag", got[0].Name)

	got[1].Name = "changed by reader"
	again, _ := GetProducts()
	assert.Equal(t, "Yoga Mat", again[1].Name)

	InvalidateCatalog()
	_, ok = GetProducts()
	assert.False(t, ok)
}
