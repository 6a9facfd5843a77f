package pos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/pos"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCart_AddFusionaLineas(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.Add(1, "Proteína", d("1"), d("35")))
	require.NoError(t, c.Add(2, "Agua", d("3"), d("1.5")))
	require.NoError(t, c.Add(1, "Proteína", d("2"), d("36")))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.True(t, lines[0].Quantity.Equal(d("3")))
	assert.True(t, lines[0].Subtotal.Equal(d("108")), "usa el precio vigente")

	items, subtotal := c.Totals()
	assert.True(t, items.Equal(d("6")))
	assert.True(t, subtotal.Equal(d("112.5")))
}

func TestCart_SetQuantityYRemove(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.Add(1, "Proteína", d("1"), d("35")))
	require.NoError(t, c.Add(2, "Agua", d("3"), d("1.5")))

	require.NoError(t, c.SetQuantity(2, d("5")))
	assert.True(t, c.Quantity(2).Equal(d("5")))

	require.NoError(t, c.SetQuantity(2, decimal.Zero))
	assert.True(t, c.Quantity(2).IsZero())
	assert.Len(t, c.Lines(), 1)

	assert.ErrorIs(t, c.Remove(99), domain.ErrNotFound)
	require.NoError(t, c.Remove(1))
	assert.True(t, c.IsEmpty())
}

func TestCart_Validaciones(t *testing.T) {
	c := pos.NewCart()
	assert.ErrorIs(t, c.Add(1, "x", decimal.Zero, d("1")), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.Add(1, "x", d("1"), d("-1")), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.SetQuantity(1, d("1")), domain.ErrNotFound)
	assert.ErrorIs(t, c.SetQuantity(1, d("-1")), domain.ErrInvalidInput)
}

func TestCart_Clear(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.Add(1, "Proteína", d("1"), d("35")))
	c.Clear()
	assert.True(t, c.IsEmpty())
	items, subtotal := c.Totals()
	assert.True(t, items.IsZero())
	assert.True(t, subtotal.IsZero())
}
