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

type OfferInput struct {
	Code           string    `json:"code" binding:"required"`
	Description    string    `json:"description"`
	DiscountType   string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64   `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount float64   `json:"min_order_amount"`
	MaxDiscount    float64   `json:"max_discount"`
	ValidFrom      time.Time `json:"valid_from" binding:"required"`
	ValidUntil     time.Time `json:"valid_until" binding:"required"`
	Active         *bool     `json:"active"`
}

// POST /admin/offers
func CreateOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input OfferInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !input.ValidUntil.After(input.ValidFrom) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_until must be after valid_from"})
			return
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}

		offer := models.Offer{
			Code:           strings.ToUpper(strings.TrimSpace(input.Code)),
			Description:    input.Description,
			DiscountType:   models.DiscountType(input.DiscountType),
			DiscountValue:  input.DiscountValue,
			MinOrderAmount: input.MinOrderAmount,
			MaxDiscount:    input.MaxDiscount,
			ValidFrom:      input.ValidFrom,
			ValidUntil:     input.ValidUntil,
			Active:         active,
		}
		if err := db.Create(&offer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer"})
			return
		}
		c.JSON(http.StatusCreated, offer)
	}
}

// PUT /admin/offers/:offerID
func UpdateOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offerID := c.Param("offerID")
		var offer models.Offer
		if err := db.First(&offer, "id = ?", offerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offer"})
			return
		}

		var input OfferInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		offer.Code = strings.ToUpper(strings.TrimSpace(input.Code))
		offer.Description = input.Description
		offer.DiscountType = models.DiscountType(input.DiscountType)
		offer.DiscountValue = input.DiscountValue
		offer.MinOrderAmount = input.MinOrderAmount
		offer.MaxDiscount = input.MaxDiscount
		offer.ValidFrom = input.ValidFrom
		offer.ValidUntil = input.ValidUntil
		if input.Active != nil {
			offer.Active = *input.Active
		}

		if err := db.Save(&offer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update offer"})
			return
		}
		c.JSON(http.StatusOK, offer)
	}
}

// DELETE /admin/offers/:offerID
func DeleteOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offerID := c.Param("offerID")
		result := db.Delete(&models.Offer{}, "id = ?", offerID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete offer"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Offer deleted"})
	}
}
