package cart

import (
	"testing"

	"github.com/fitgear/fitgear-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	productA = models.Product{ID: "a", Name: "Product A", Price: 1000, Category: "gear"}
	productB = models.Product{ID: "b", Name: "Product B", Price: 500, Category: "gear"}
	productC = models.Product{ID: "c", Name: "Product C", Price: 2999, Category: "accessories"}
)

func TestAdd_SameProductTwiceMergesLine(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))
	require.NoError(t, c.Add(productA))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productB))
	require.NoError(t, c.Add(productA))
	require.NoError(t, c.Add(productB))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[0].Product.ID)
	assert.Equal(t, "a", lines[1].Product.ID)
}

func TestAdd_RejectsInvalidProduct(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))

	assert.ErrorIs(t, c.Add(models.Product{Name: "no id"}), ErrInvalidProduct)
	assert.ErrorIs(t, c.Add(models.Product{ID: "neg", Price: -1}), ErrInvalidProduct)
	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, int64(1000), c.Total())
}

func TestTotal_TwoLines(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))
	require.NoError(t, c.Add(productA))
	require.NoError(t, c.Add(productB))

	assert.Equal(t, int64(2500), c.Total())
	assert.Equal(t, 3, c.Count())
}

func TestTotal_DistinctProductsSumPriceTimesQuantity(t *testing.T) {
	c := New()
	for _, p := range []models.Product{productA, productB, productC} {
		require.NoError(t, c.Add(p))
	}
	require.NoError(t, c.UpdateQuantity("c", 3))

	var want int64
	for _, l := range c.Lines() {
		want += l.Product.Price * int64(l.Quantity)
	}
	assert.Equal(t, want, c.Total())
	assert.Equal(t, int64(1000+500+3*2999), c.Total())
}

func TestRemove_IsIdempotent(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))
	require.NoError(t, c.Add(productB))

	c.Remove("a")
	once := c.Lines()
	c.Remove("a")

	assert.Equal(t, once, c.Lines())
	assert.Equal(t, int64(500), c.Total())
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))

	c.Remove("zzz")

	assert.Len(t, c.Lines(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))

	require.NoError(t, c.UpdateQuantity("a", 4))
	assert.Equal(t, int64(4000), c.Total())

	for _, q := range []int{0, -1, -50} {
		assert.ErrorIs(t, c.UpdateQuantity("a", q), ErrInvalidQuantity)
	}
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	assert.ErrorIs(t, c.UpdateQuantity("missing", 2), ErrLineNotFound)
}

func TestClear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Total())
	assert.Empty(t, c.Lines())
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(productA))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestRestore(t *testing.T) {
	c, err := Restore([]Line{{Product: productA, Quantity: 2}, {Product: productB, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), c.Total())

	_, err = Restore([]Line{{Product: productA, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Restore([]Line{{Product: productA, Quantity: 1}, {Product: productA, Quantity: 1}})
	assert.Error(t, err)

	_, err = Restore([]Line{{Product: models.Product{}, Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}
