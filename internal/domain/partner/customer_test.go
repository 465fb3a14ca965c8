package partner

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoyaltyCard(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"valid", "1234567890", true},
		{"empty means none", "", true},
		{"too short", "123456789", false},
		{"too long", "12345678901", false},
		{"non-digit", "123456789a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := ParseLoyaltyCard(tt.code)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.code, card.String())
			} else {
				assert.ErrorIs(t, err, ErrInvalidLoyaltyCard)
			}
		})
	}
}

func TestNewCustomer(t *testing.T) {
	customer, err := NewCustomer("Mario Rossi")
	require.NoError(t, err)
	assert.Equal(t, "Mario Rossi", customer.Name)
	assert.False(t, customer.Card.IsSet())
	assert.Zero(t, customer.Points)

	_, err = NewCustomer("   ")
	assert.Equal(t, "INVALID_NAME", shared.CodeOf(err))
}

func TestCustomer_AttachDetachCard(t *testing.T) {
	customer, err := NewCustomer("Mario Rossi")
	require.NoError(t, err)

	require.NoError(t, customer.AttachCard("1234567890"))
	assert.True(t, customer.Card.IsSet())

	err = customer.AttachCard("12345")
	assert.ErrorIs(t, err, ErrInvalidLoyaltyCard)

	err = customer.AttachCard("")
	assert.ErrorIs(t, err, ErrInvalidLoyaltyCard)

	require.NoError(t, customer.ModifyPoints(30))

	// binding a different card resets the balance
	require.NoError(t, customer.AttachCard("0987654321"))
	assert.Zero(t, customer.Points)

	customer.DetachCard()
	assert.False(t, customer.Card.IsSet())
	assert.Zero(t, customer.Points)
}

func TestCustomer_ModifyPoints(t *testing.T) {
	customer, err := NewCustomer("Mario Rossi")
	require.NoError(t, err)

	err = customer.ModifyPoints(10)
	assert.Equal(t, "INVALID_CARD", shared.CodeOf(err), "points require a card")

	require.NoError(t, customer.AttachCard("1234567890"))
	require.NoError(t, customer.ModifyPoints(10))
	require.NoError(t, customer.ModifyPoints(-4))
	assert.Equal(t, 6, customer.Points)

	err = customer.ModifyPoints(-7)
	assert.Equal(t, "INVALID_POINTS", shared.CodeOf(err))
	assert.Equal(t, 6, customer.Points, "rejected delta leaves balance unchanged")
}
