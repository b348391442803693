package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	t.Run("creates profile in pending status", func(t *testing.T) {
		p, err := NewProfile("Vendor@Example.com", "hashed", "Chai Corner")

		require.NoError(t, err)
		assert.Equal(t, "vendor@example.com", p.AuthSubject)
		assert.Equal(t, "Chai Corner", p.BusinessName)
		assert.Equal(t, OnboardingPending, p.Status)
		assert.False(t, p.IsAdmin)
		assert.NotNil(t, p.Flags)
	})

	t.Run("fails with empty auth subject", func(t *testing.T) {
		p, err := NewProfile("  ", "hashed", "Chai Corner")

		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("fails with empty business name", func(t *testing.T) {
		p, err := NewProfile("vendor@example.com", "hashed", "")

		assert.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestProfileUpdate(t *testing.T) {
	newProfile := func(t *testing.T) *Profile {
		p, err := NewProfile("vendor@example.com", "hashed", "Chai Corner")
		require.NoError(t, err)
		return p
	}

	strPtr := func(s string) *string { return &s }

	t.Run("updates only provided fields", func(t *testing.T) {
		p := newProfile(t)
		p.OwnerName = "Asha"

		err := p.Update(strPtr("Chai Corner 2"), nil, strPtr("9999999999"), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "Chai Corner 2", p.BusinessName)
		assert.Equal(t, "Asha", p.OwnerName)
		assert.Equal(t, "9999999999", p.Phone)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		p := newProfile(t)

		err := p.Update(nil, nil, nil, strPtr("not-an-email"), nil)

		assert.Error(t, err)
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		p := newProfile(t)

		err := p.Update(nil, nil, strPtr("abc"), nil, nil)

		assert.Error(t, err)
	})

	t.Run("rejects blank business name", func(t *testing.T) {
		p := newProfile(t)

		err := p.Update(strPtr(""), nil, nil, nil, nil)

		assert.Error(t, err)
		assert.Equal(t, "Chai Corner", p.BusinessName)
	})
}

func TestProfileFlags(t *testing.T) {
	t.Run("sets and reads flags", func(t *testing.T) {
		p, err := NewProfile("vendor@example.com", "hashed", "Chai Corner")
		require.NoError(t, err)

		require.NoError(t, p.SetFlag("ai_menu_extraction", true))

		assert.True(t, p.Flags.Enabled("ai_menu_extraction"))
		assert.False(t, p.Flags.Enabled("whatsapp_billing"))
	})

	t.Run("rejects empty flag name", func(t *testing.T) {
		p, err := NewProfile("vendor@example.com", "hashed", "Chai Corner")
		require.NoError(t, err)

		assert.Error(t, p.SetFlag(" ", true))
	})

	t.Run("round-trips through jsonb", func(t *testing.T) {
		f := FlagSet{"a": true, "b": false}

		v, err := f.Value()
		require.NoError(t, err)

		var out FlagSet
		require.NoError(t, out.Scan(v))
		assert.Equal(t, f, out)
	})
}
