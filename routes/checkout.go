package routes

import (
	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/quickbasket-in/storefront-api/controllers/checkout"
	orderControllers "github.com/quickbasket-in/storefront-api/controllers/order"
	"github.com/quickbasket-in/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, hub *orderControllers.Hub, gw checkoutControllers.Gateway) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.ValidateToken)
	{
		checkout.POST("/quote", checkoutControllers.QuoteHandler(db))
		checkout.POST("/place", checkoutControllers.PlaceOrderHandler(db, gw, hub))
		checkout.POST("/confirm", checkoutControllers.ConfirmPaymentHandler(db, gw, hub))
	}
}
