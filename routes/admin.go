package routes

import (
	"github.com/gin-gonic/gin"
	offerControllers "github.com/quickbasket-in/storefront-api/controllers/offer"
	orderControllers "github.com/quickbasket-in/storefront-api/controllers/order"
	"github.com/quickbasket-in/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, hub *orderControllers.Hub) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db, hub))
		admin.PUT("/orders/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

		admin.POST("/offers", offerControllers.CreateOffer(db))
		admin.PUT("/offers/:offerID", offerControllers.UpdateOffer(db))
		admin.DELETE("/offers/:offerID", offerControllers.DeleteOffer(db))
	}
}
