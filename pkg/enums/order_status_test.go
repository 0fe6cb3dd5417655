package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusDelivered, OrderStatusRefunded, true},
		{OrderStatusPending, OrderStatus("lost"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, OrderStatusPending.IsCancellable())
	assert.False(t, OrderStatusShipped.IsCancellable())
}

func TestParseEnums(t *testing.T) {
	role, err := ParseUserRole("moderator")
	require.NoError(t, err)
	assert.Equal(t, UserRoleModerator, role)
	_, err = ParseUserRole("root")
	assert.Error(t, err)

	method, err := ParsePaymentMethod("pix")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodPix, method)
	_, err = ParsePaymentMethod("bitcoin")
	assert.Error(t, err)

	pos, err := ParseBannerPosition("home-middle")
	require.NoError(t, err)
	assert.Equal(t, BannerPositionHomeMiddle, pos)
	assert.False(t, BannerPosition("footer").IsValid())

	assert.True(t, AddressTypeWork.IsValid())
	assert.True(t, PaymentStatusRefunded.IsValid())
	assert.False(t, PaymentStatus("settled").IsValid())
}

func TestParseOrderStatusAcceptsEveryStatus(t *testing.T) {
	for _, status := range validOrderStatuses {
		parsed, err := ParseOrderStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
		assert.True(t, parsed.IsValid())
	}
	_, err := ParseOrderStatus("lost")
	require.Error(t, err)
	assert.False(t, OrderStatus("lost").IsValid())
}
