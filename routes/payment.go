package routes

import (
	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/quickbasket-in/storefront-api/controllers/checkout"
	orderControllers "github.com/quickbasket-in/storefront-api/controllers/order"
	paymentControllers "github.com/quickbasket-in/storefront-api/controllers/payment"
	"github.com/quickbasket-in/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, hub *orderControllers.Hub) {
	payment := r.Group("/payment")
	{
		// Status poll / reconciliation
		payment.GET("/order/:orderID", middleware.ValidateToken, paymentControllers.GetPaymentForOrder(db))

		// Webhook endpoint: middleware handles sandbox/prod verification
		payment.POST("/webhook",
			middleware.GatewayWebhookAuth(),
			checkoutControllers.WebhookHandler(db, hub),
		)
	}
}
