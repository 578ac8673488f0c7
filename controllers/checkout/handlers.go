package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/quickbasket-in/storefront-api/controllers/cart"
	offerControllers "github.com/quickbasket-in/storefront-api/controllers/offer"
	orderControllers "github.com/quickbasket-in/storefront-api/controllers/order"
	paymentControllers "github.com/quickbasket-in/storefront-api/controllers/payment"
	"github.com/quickbasket-in/storefront-api/models"
	"github.com/quickbasket-in/storefront-api/pricing"
	"gorm.io/gorm"
)

type QuoteRequest struct {
	AddressID        uint     `json:"address_id"`
	OfferCode        string   `json:"offer_code"`
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
}

// POST /checkout/quote — prices the current cart without writing anything.
func QuoteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := cartControllers.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		subtotal, err := cartControllers.ForIdentity(db, identity).Subtotal()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var discount float64
		if req.OfferCode != "" {
			if offer, err := offerControllers.ValidateCode(db, req.OfferCode); err == nil {
				discount = offerControllers.DiscountFor(offer, subtotal)
			}
		}

		var addrCoords *pricing.Coordinates
		if req.AddressID != 0 {
			var address models.Address
			if err := db.Where("user_id = ? AND id = ?", identity.ID, req.AddressID).
				First(&address).Error; err == nil &&
				address.Latitude != nil && address.Longitude != nil {
				addrCoords = &pricing.Coordinates{Latitude: *address.Latitude, Longitude: *address.Longitude}
			}
		}
		var current *pricing.Coordinates
		if req.CurrentLatitude != nil && req.CurrentLongitude != nil {
			current = &pricing.Coordinates{Latitude: *req.CurrentLatitude, Longitude: *req.CurrentLongitude}
		}

		c.JSON(http.StatusOK, pricing.BuildQuote(subtotal, discount, addrCoords, current))
	}
}

// POST /checkout/place
func PlaceOrderHandler(db *gorm.DB, gw Gateway, hub *orderControllers.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := cartControllers.IdentityFromContext(c)
		if !ok || identity.Guest {
			// Guest orders are not supported; sign in first.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to place an order"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := PlaceOrder(db, gw, hub, identity, req)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, ErrMissingAddress),
				errors.Is(err, ErrMissingPaymentMethod),
				errors.Is(err, ErrEmptyCart),
				errors.Is(err, ErrBelowMinimum):
				status = http.StatusBadRequest
			case errors.Is(err, ErrPaymentIntentFailed):
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// POST /checkout/confirm — the client reports the hosted checkout outcome.
func ConfirmPaymentHandler(db *gorm.DB, gw Gateway, hub *orderControllers.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := cartControllers.IdentityFromContext(c)
		if !ok || identity.Guest {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req ConfirmPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := CompletePayment(db, gw, hub, identity, req)
		if err != nil {
			if errors.Is(err, ErrPaymentCancelled) {
				c.JSON(http.StatusConflict, gin.H{"error": "Payment cancelled"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// WebhookRequest is the gateway's server-to-server notification. The webhook
// middleware has already authenticated the payload.
type WebhookRequest struct {
	GatewayOrderRef string `json:"gateway_order_ref" binding:"required"`
	PaymentID       string `json:"payment_id"`
	Status          string `json:"status" binding:"required"` // "captured" or "failed"
	Reason          string `json:"reason"`
}

// POST /payment/webhook
func WebhookHandler(db *gorm.DB, hub *orderControllers.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
			return
		}

		var intent models.PaymentIntent
		if err := db.Where("gateway_order_ref = ?", req.GatewayOrderRef).
			Order("created_at DESC").First(&intent).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown gateway order reference"})
			return
		}
		if intent.Status == models.PaymentIntentSucceeded {
			c.JSON(http.StatusOK, gin.H{"message": "already processed"})
			return
		}

		if req.Status != "captured" {
			reason := req.Reason
			if reason == "" {
				reason = "gateway reported " + req.Status
			}
			if err := paymentControllers.MarkFailed(db, &intent, reason); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment failure"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})
			return
		}

		if err := paymentControllers.MarkSucceeded(db, &intent, req.PaymentID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", intent.OrderID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order lookup failed"})
			return
		}
		order.PaymentStatus = models.PaymentStatusPaid
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		identity := cartControllers.Identity{ID: order.UserID}
		if _, err := finalize(db, hub, identity, order.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully"})
	}
}
