package offerControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickbasket-in/storefront-api/models"
	"gorm.io/gorm"
)

var ErrOfferNotFound = errors.New("offer not found or expired")

// ValidateCode resolves a promo code to a usable offer. Codes are
// case-insensitive; the window and active flag are re-checked in Go on top of
// the query filter.
func ValidateCode(db *gorm.DB, code string) (*models.Offer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrOfferNotFound
	}

	now := time.Now()
	var offer models.Offer
	err := db.Where("code = ? AND active = ? AND valid_from <= ? AND valid_until >= ?",
		code, true, now, now).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	if !offer.Usable(now) {
		return nil, ErrOfferNotFound
	}
	return &offer, nil
}

// DiscountFor computes the discount an offer contributes to an order amount.
// A nil offer or an amount below the offer's minimum contributes zero; the
// result never exceeds the order amount.
func DiscountFor(offer *models.Offer, orderAmount float64) float64 {
	if offer == nil || orderAmount <= 0 {
		return 0
	}
	if offer.MinOrderAmount > 0 && orderAmount < offer.MinOrderAmount {
		return 0
	}

	var discount float64
	switch offer.DiscountType {
	case models.DiscountTypePercentage:
		discount = orderAmount * offer.DiscountValue / 100
		if offer.MaxDiscount > 0 && discount > offer.MaxDiscount {
			discount = offer.MaxDiscount
		}
	case models.DiscountTypeFixed:
		discount = offer.DiscountValue
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	return discount
}

// GET /offers
func GetActiveOffers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		var offers []models.Offer
		if err := db.Where("active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
			Order("created_at DESC").Find(&offers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
			return
		}
		c.JSON(http.StatusOK, offers)
	}
}

type ValidateOfferRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required,min=0"`
}

// POST /offers/validate
func ValidateOfferHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateOfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		offer, err := ValidateCode(db, req.Code)
		if err != nil {
			if errors.Is(err, ErrOfferNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or expired promo code"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate promo code"})
			return
		}

		discount := DiscountFor(offer, req.OrderAmount)
		c.JSON(http.StatusOK, gin.H{
			"offer":    offer,
			"discount": discount,
		})
	}
}
