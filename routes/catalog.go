package routes

import (
	"github.com/gin-gonic/gin"
	offerControllers "github.com/quickbasket-in/storefront-api/controllers/offer"
	productControllers "github.com/quickbasket-in/storefront-api/controllers/product"
	"gorm.io/gorm"
)

func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", productControllers.GetCategories(db))

	offers := r.Group("/offers")
	{
		offers.GET("/", offerControllers.GetActiveOffers(db))
		offers.POST("/validate", offerControllers.ValidateOfferHandler(db))
	}
}
