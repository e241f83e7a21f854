package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fitgear/fitgear-api/cache"
	"github.com/fitgear/fitgear-api/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ProductsLoadsOnceAndSkipsUnknownCategories(t *testing.T) {
	cache.InvalidateCatalog()
	t.Cleanup(cache.InvalidateCatalog)

	gdb, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "name", "price", "category", "position"}).
		AddRow("1", "Pro Running Shoes", 15999, "trainers", 1).
		AddRow("2", "Mystery Box", 100, "footwear", 2).
		AddRow("3", "Resistance Bands", 2999, "gear", 3)
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(rows)

	svc := NewCatalogService(gdb, nil)
	products, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "3", products[1].ID)

	// served from cache, no second query expected
	again, err := svc.Search(context.Background(), catalog.Criteria{Category: catalog.CategoryGear})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "Resistance Bands", again[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_ProductNotFound(t *testing.T) {
	cache.SetProducts(catalog.DefaultProducts())
	t.Cleanup(cache.InvalidateCatalog)

	svc := NewCatalogService(nil, nil)
	_, err := svc.Product(context.Background(), "404")
	assert.ErrorIs(t, err, ErrProductNotFound)

	p, err := svc.Product(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, "Fitness Tracker Watch", p.Name)
}
