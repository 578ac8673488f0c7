package offerControllers

import (
	"testing"
	"time"

	"github.com/quickbasket-in/storefront-api/models"
	"github.com/stretchr/testify/assert"
)

func percentOffer(value, minOrder, maxDiscount float64) *models.Offer {
	return &models.Offer{
		Code:           "SAVE",
		DiscountType:   models.DiscountTypePercentage,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		MaxDiscount:    maxDiscount,
	}
}

func fixedOffer(value, minOrder float64) *models.Offer {
	return &models.Offer{
		Code:           "FLAT",
		DiscountType:   models.DiscountTypeFixed,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
	}
}

func TestDiscountFor(t *testing.T) {
	tests := []struct {
		name   string
		offer  *models.Offer
		amount float64
		want   float64
	}{
		{"nil offer", nil, 1000, 0},
		{"zero amount", percentOffer(10, 0, 0), 0, 0},
		{"below minimum", percentOffer(10, 500, 0), 300, 0},
		{"at minimum", percentOffer(10, 500, 0), 500, 50},
		{"percentage uncapped", percentOffer(20, 0, 0), 1000, 200},
		{"percentage capped", percentOffer(50, 50, 25), 2000, 25},
		{"fixed", fixedOffer(100, 0), 800, 100},
		{"fixed exceeds amount", fixedOffer(900, 0), 600, 600},
		{"unknown type", &models.Offer{DiscountType: "bogus", DiscountValue: 10}, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountFor(tt.offer, tt.amount))
		})
	}
}

// Discount is always within [0, amount] and zero below the offer minimum.
func TestDiscountForBounds(t *testing.T) {
	offers := []*models.Offer{
		percentOffer(150, 0, 0), // pathological value over 100%
		percentOffer(50, 200, 25),
		fixedOffer(1e6, 0),
	}
	amounts := []float64{0, 1, 199, 200, 500, 2000, 1e6}
	for _, offer := range offers {
		for _, amount := range amounts {
			d := DiscountFor(offer, amount)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, amount)
			if offer.MinOrderAmount > 0 && amount < offer.MinOrderAmount {
				assert.Zero(t, d)
			}
		}
	}
}

func TestOfferWindow(t *testing.T) {
	now := time.Now()
	offer := models.Offer{
		Active:     true,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
	}

	assert.True(t, offer.Usable(now))
	assert.False(t, offer.Usable(now.Add(2*time.Hour)))
	assert.False(t, offer.Usable(now.Add(-2*time.Hour)))

	offer.Active = false
	assert.False(t, offer.Usable(now))
}
