package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quickbasket-in/storefront-api/models"
	"gorm.io/gorm"
)

// CreateIntent persists a payment intent row for an order.
func CreateIntent(db *gorm.DB, orderID uint, amount float64, method string,
	status models.PaymentIntentStatus, gatewayOrderRef string) (*models.PaymentIntent, error) {

	intent := models.PaymentIntent{
		OrderID:         orderID,
		Amount:          amount,
		Currency:        "INR",
		Method:          method,
		Status:          status,
		GatewayOrderRef: gatewayOrderRef,
	}
	if err := db.Create(&intent).Error; err != nil {
		return nil, err
	}
	return &intent, nil
}

// MarkFailed records the failure reason in the opaque response field before
// the error propagates.
func MarkFailed(db *gorm.DB, intent *models.PaymentIntent, reason string) error {
	intent.Status = models.PaymentIntentFailed
	intent.GatewayResponse = reason
	return db.Save(intent).Error
}

func MarkSucceeded(db *gorm.DB, intent *models.PaymentIntent, gatewayPaymentID string) error {
	intent.Status = models.PaymentIntentSucceeded
	intent.GatewayPaymentID = gatewayPaymentID
	return db.Save(intent).Error
}

// LatestForOrder returns the most recent intent for an order.
func LatestForOrder(db *gorm.DB, orderID uint) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := db.Where("order_id = ?", orderID).Order("created_at DESC").First(&intent).Error; err != nil {
		return nil, err
	}
	return &intent, nil
}

// GET /payment/order/:orderID — status poll / reconciliation.
func GetPaymentForOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var intent models.PaymentIntent
		err := db.Where("order_id = ?", orderID).Order("created_at DESC").First(&intent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payment"})
			return
		}
		c.JSON(http.StatusOK, intent)
	}
}
