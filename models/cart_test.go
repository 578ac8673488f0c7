package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartSubtotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductPrice: 40, Quantity: 3},
		{ProductPrice: 12.5, Quantity: 2},
		{Quantity: 5}, // missing price counts as zero
	}}
	assert.Equal(t, 145.0, cart.Subtotal())

	assert.Zero(t, Cart{}.Subtotal())
}
