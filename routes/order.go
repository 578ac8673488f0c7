package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/quickbasket-in/storefront-api/controllers/order"
	"github.com/quickbasket-in/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *orderControllers.Hub) {
	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.WebSocketHandler(hub))

		authed := orders.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.GET("/", orderControllers.GetUserOrdersHandler(db))
			authed.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			authed.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db, hub))
			authed.POST("/:orderID/reorder", orderControllers.ReorderHandler(db))
		}
	}
}
