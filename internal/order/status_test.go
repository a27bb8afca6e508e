package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{
		"placed", "confirmed", "packed", "shipped",
		"out_for_delivery", "delivered", "cancelled", "return_requested",
	} {
		got, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("refunded")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		// Forward chain.
		{StatusPlaced, StatusConfirmed, true},
		{StatusConfirmed, StatusPacked, true},
		{StatusPacked, StatusShipped, true},
		{StatusShipped, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusDelivered, true},

		// No skipping ahead or moving backwards.
		{StatusPlaced, StatusShipped, false},
		{StatusShipped, StatusConfirmed, false},
		{StatusDelivered, StatusPlaced, false},

		// Cancellation is open until delivery.
		{StatusPlaced, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPacked, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusOutForDelivery, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},

		// Returns only after delivery.
		{StatusDelivered, StatusReturnRequested, true},
		{StatusShipped, StatusReturnRequested, false},

		// Terminal states go nowhere.
		{StatusCancelled, StatusPlaced, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusReturnRequested, StatusDelivered, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusReturnRequested.Terminal())
	assert.False(t, StatusDelivered.Terminal(), "delivered can still move to return_requested")
	assert.False(t, StatusPlaced.Terminal())
}
