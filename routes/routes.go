package routes

import (
	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/quickbasket-in/storefront-api/controllers/checkout"
	orderControllers "github.com/quickbasket-in/storefront-api/controllers/order"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *orderControllers.Hub, gw checkoutControllers.Gateway) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog + offers
	SetupCatalogRoutes(r, db)

	// User routes (JWT-protected; guests allowed where noted)
	SetupUserRoutes(r, db)

	// Checkout + orders
	SetupCheckoutRoutes(r, db, hub, gw)
	SetupOrderRoutes(r, db, hub)

	// Payment status + gateway webhook
	SetupPaymentRoutes(r, db, hub)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db, hub)
}
