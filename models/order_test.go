package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusOutForDelivery, true},
		{OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{OrderStatusConfirmed, OrderStatusDelivered, true}, // forward jumps allowed
		{OrderStatusPreparing, OrderStatusConfirmed, false},
		{OrderStatusDelivered, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusPreparing, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusPending, "bogus", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCancelAndReorderGuards(t *testing.T) {
	assert.True(t, Order{Status: OrderStatusPending}.CanCancel())
	assert.True(t, Order{Status: OrderStatusConfirmed}.CanCancel())
	assert.False(t, Order{Status: OrderStatusPreparing}.CanCancel())
	assert.False(t, Order{Status: OrderStatusDelivered}.CanCancel())

	assert.True(t, Order{Status: OrderStatusDelivered}.CanReorder())
	assert.False(t, Order{Status: OrderStatusConfirmed}.CanReorder())
	assert.False(t, Order{Status: OrderStatusCancelled}.CanReorder())
}
