package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/quickbasket-in/storefront-api/controllers/address"
	cartControllers "github.com/quickbasket-in/storefront-api/controllers/cart"
	userControllers "github.com/quickbasket-in/storefront-api/controllers/user"
	wishlistControllers "github.com/quickbasket-in/storefront-api/controllers/wishlist"
	"github.com/quickbasket-in/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT-protected endpoints. The cart and
// wishlist groups accept guest tokens too; the repository strategy picks the
// storage path from the token role.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(db))
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))
			cartGroup.POST("/add", cartControllers.AddCartItem(db))
			cartGroup.POST("/merge", cartControllers.MergeGuestCart(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearCart(db))
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("/", wishlistControllers.AddWishlistItem(db))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.DeleteWishlistItem(db))
		}

		// ──────────────── Addresses ────────────────
		addressGroup := userGroup.Group("/addresses")
		{
			addressGroup.GET("/", addressControllers.GetAddresses(db))
			addressGroup.POST("/", addressControllers.CreateAddress(db))
			addressGroup.PUT("/:addressID", addressControllers.UpdateAddress(db))
			addressGroup.POST("/:addressID/default", addressControllers.SetDefaultAddress(db))
			addressGroup.DELETE("/:addressID", addressControllers.DeleteAddress(db))
		}
	}
}
