package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	from := Coordinates{Latitude: 26.0, Longitude: 87.0}
	to := Coordinates{Latitude: 26.05, Longitude: 87.05}

	assert.Zero(t, Haversine(from, from))
	assert.InDelta(t, 7.4747, Haversine(from, to), 0.01)
	// Symmetric
	assert.InDelta(t, Haversine(from, to), Haversine(to, from), 1e-9)
}

func TestDeliveryFeeFreeAboveThreshold(t *testing.T) {
	far := Coordinates{Latitude: 27.0, Longitude: 88.0}
	here := Coordinates{Latitude: 26.0, Longitude: 87.0}

	// Free delivery wins regardless of distance or missing coordinates.
	assert.Zero(t, DeliveryFee(FreeDeliveryThreshold, &far, &here))
	assert.Zero(t, DeliveryFee(2500, nil, nil))
}

func TestDeliveryFeeNoCoordinates(t *testing.T) {
	here := Coordinates{Latitude: 26.0, Longitude: 87.0}

	// No address coordinates: flat fee once the minimum is met.
	assert.Equal(t, BaseDeliveryFee, DeliveryFee(600, nil, &here))
	assert.Zero(t, DeliveryFee(499, nil, &here))

	// Address present but device location unavailable: same fallback.
	assert.Equal(t, BaseDeliveryFee, DeliveryFee(600, &here, nil))
	assert.Zero(t, DeliveryFee(300, &here, nil))
}

func TestDeliveryFeeByDistance(t *testing.T) {
	current := Coordinates{Latitude: 26.0, Longitude: 87.0}

	tests := []struct {
		name    string
		address Coordinates
		want    float64
	}{
		{"within base radius", Coordinates{Latitude: 26.02, Longitude: 87.0}, 50},   // ~2.2 km
		{"beyond base radius", Coordinates{Latitude: 26.05, Longitude: 87.05}, 75},  // ~7.47 km
		{"twice as far", Coordinates{Latitude: 26.1, Longitude: 87.1}, 149},         // ~14.95 km
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeliveryFee(600, &tt.address, &current))
		})
	}
}

// Fee never decreases as the address moves farther away.
func TestDeliveryFeeMonotonic(t *testing.T) {
	current := Coordinates{Latitude: 26.0, Longitude: 87.0}
	prev := 0.0
	for i := 0; i < 20; i++ {
		address := Coordinates{Latitude: 26.0 + float64(i)*0.01, Longitude: 87.0}
		fee := DeliveryFee(600, &address, &current)
		require.GreaterOrEqual(t, fee, prev, "fee dropped at step %d", i)
		prev = fee
	}
}

func TestShortfall(t *testing.T) {
	assert.Equal(t, 200.0, Shortfall(300))
	assert.Zero(t, Shortfall(MinimumOrderAmount))
	assert.Zero(t, Shortfall(1500))
}

func TestGrandTotal(t *testing.T) {
	assert.Equal(t, 665.0, GrandTotal(600, 0, 63))
	assert.Equal(t, 552.0, GrandTotal(600, 50, 0))
	// Discount larger than subtotal clamps to zero, never negative.
	assert.Equal(t, 52.0, GrandTotal(100, 500, 50))
}

func TestBuildQuoteHaversineScenario(t *testing.T) {
	current := Coordinates{Latitude: 26.0, Longitude: 87.0}
	address := Coordinates{Latitude: 26.05, Longitude: 87.05}

	q := BuildQuote(600, 0, &address, &current)
	require.Equal(t, 75.0, q.DeliveryFee)
	assert.Equal(t, 677.0, q.Total) // 600 + 75 + 2
	assert.Zero(t, q.Shortfall)
}

func TestBuildQuoteDiscountedAboveFreeThreshold(t *testing.T) {
	// Percentage offer capped at 25 on a 2000 subtotal: fee stays 0.
	q := BuildQuote(2000, 25, nil, nil)
	assert.Zero(t, q.DeliveryFee)
	assert.Equal(t, 1977.0, q.Total) // 1975 + 0 + 2
}

func TestBuildQuoteClampsDiscount(t *testing.T) {
	q := BuildQuote(600, 900, nil, nil)
	assert.Equal(t, 600.0, q.Discount)
	assert.Equal(t, BaseDeliveryFee+HandlingCharge, q.Total)

	q = BuildQuote(600, -10, nil, nil)
	assert.Zero(t, q.Discount)
}
