package pricing

import "math"

// Checkout thresholds and fees, in rupees / kilometers.
const (
	MinimumOrderAmount     = 500.0
	FreeDeliveryThreshold  = 1000.0
	BaseDeliveryFee        = 50.0
	BaseDeliveryDistanceKM = 5.0
	DeliveryFeePerKM       = 10.0
	HandlingCharge         = 2.0

	earthRadiusKM = 6371.0
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Haversine returns the great-circle distance between two points in km.
func Haversine(from, to Coordinates) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLng := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// DeliveryFee computes the fee for a given pre-discount subtotal. address is
// the delivery coordinate (nil when the selected address has none), current
// is the device location (nil when unavailable). Fees round to whole rupees.
func DeliveryFee(subtotal float64, address, current *Coordinates) float64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	if address == nil || current == nil {
		// Flat fee once the order qualifies at all.
		if subtotal >= MinimumOrderAmount {
			return BaseDeliveryFee
		}
		return 0
	}
	distance := Haversine(*current, *address)
	if distance <= BaseDeliveryDistanceKM {
		return BaseDeliveryFee
	}
	return math.Round(BaseDeliveryFee + (distance-BaseDeliveryDistanceKM)*DeliveryFeePerKM)
}

// Shortfall is the amount still needed to reach the minimum order, evaluated
// on the pre-discount subtotal. Zero once the gate is met.
func Shortfall(subtotal float64) float64 {
	if subtotal >= MinimumOrderAmount {
		return 0
	}
	return MinimumOrderAmount - subtotal
}

// GrandTotal clamps the discount so the discounted subtotal never goes
// negative, then adds the delivery fee and the fixed handling charge.
func GrandTotal(subtotal, discount, deliveryFee float64) float64 {
	discounted := subtotal - discount
	if discounted < 0 {
		discounted = 0
	}
	return discounted + deliveryFee + HandlingCharge
}

// Quote is the full monetary breakdown for a checkout attempt.
type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	DeliveryFee    float64 `json:"delivery_fee"`
	HandlingCharge float64 `json:"handling_charge"`
	Total          float64 `json:"total"`
	Shortfall      float64 `json:"shortfall"`
}

// BuildQuote assembles the breakdown from an already-computed discount.
func BuildQuote(subtotal, discount float64, address, current *Coordinates) Quote {
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	fee := DeliveryFee(subtotal, address, current)
	return Quote{
		Subtotal:       subtotal,
		Discount:       discount,
		DeliveryFee:    fee,
		HandlingCharge: HandlingCharge,
		Total:          GrandTotal(subtotal, discount, fee),
		Shortfall:      Shortfall(subtotal),
	}
}
