package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	vendorID := uuid.New()

	t.Run("creates customer with zero visit count", func(t *testing.T) {
		c, err := NewCustomer(vendorID, "Ravi", "9999999999")

		require.NoError(t, err)
		assert.Equal(t, vendorID, c.VendorID)
		assert.Equal(t, "Ravi", c.Name)
		assert.Equal(t, "9999999999", c.Phone)
		assert.Equal(t, 0, c.VisitCount)
		assert.Equal(t, 0, c.PointsBalance)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		c, err := NewCustomer(vendorID, "", "9999999999")

		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("fails with malformed phone", func(t *testing.T) {
		c, err := NewCustomer(vendorID, "Ravi", "not-a-phone")

		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("vendor stamp is immutable", func(t *testing.T) {
		c, err := NewCustomer(vendorID, "Ravi", "")
		require.NoError(t, err)

		c.StampVendor(uuid.New())

		assert.Equal(t, vendorID, c.VendorID)
	})
}

func TestCustomerPoints(t *testing.T) {
	newCustomer := func(t *testing.T) *Customer {
		c, err := NewCustomer(uuid.New(), "Ravi", "")
		require.NoError(t, err)
		return c
	}

	t.Run("adds and redeems points", func(t *testing.T) {
		c := newCustomer(t)

		require.NoError(t, c.AddPoints(50))
		require.NoError(t, c.RedeemPoints(20))

		assert.Equal(t, 30, c.PointsBalance)
	})

	t.Run("fails redeeming more than balance", func(t *testing.T) {
		c := newCustomer(t)
		require.NoError(t, c.AddPoints(10))

		err := c.RedeemPoints(11)

		assert.Error(t, err)
		assert.Equal(t, 10, c.PointsBalance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		c := newCustomer(t)

		assert.Error(t, c.AddPoints(0))
		assert.Error(t, c.RedeemPoints(-1))
	})
}

func TestCustomerRecordVisit(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Ravi", "")
	require.NoError(t, err)

	c.RecordVisit()
	c.RecordVisit()

	assert.Equal(t, 2, c.VisitCount)
}
