package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStock(t *testing.T) {
	newItem := func(t *testing.T, stock int64) *Item {
		item, err := NewItem(uuid.New(), "Milk", "litre", decimal.NewFromInt(stock))
		require.NoError(t, err)
		return item
	}

	t.Run("decrements stock", func(t *testing.T) {
		item := newItem(t, 10)

		require.NoError(t, item.Decrement(decimal.NewFromInt(4)))

		assert.True(t, item.Stock.Equal(decimal.NewFromInt(6)))
	})

	t.Run("refuses to go negative", func(t *testing.T) {
		item := newItem(t, 3)

		err := item.Decrement(decimal.NewFromInt(4))

		assert.Error(t, err)
		assert.True(t, item.Stock.Equal(decimal.NewFromInt(3)))
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		item := newItem(t, 3)

		assert.Error(t, item.Decrement(decimal.Zero))
		assert.Error(t, item.Increment(decimal.NewFromInt(-1)))
	})

	t.Run("low stock tracks threshold", func(t *testing.T) {
		item := newItem(t, 5)
		require.NoError(t, item.SetThreshold(decimal.NewFromInt(5)))

		assert.True(t, item.IsLowStock())

		require.NoError(t, item.Increment(decimal.NewFromInt(1)))
		assert.False(t, item.IsLowStock())
	})

	t.Run("zero threshold never reports low", func(t *testing.T) {
		item := newItem(t, 0)

		assert.False(t, item.IsLowStock())
	})
}

func TestNewItem(t *testing.T) {
	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewItem(uuid.New(), "Milk", "litre", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("defaults unit", func(t *testing.T) {
		item, err := NewItem(uuid.New(), "Cups", "", decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.Equal(t, "unit", item.Unit)
	})
}
