package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/quickbasket-in/storefront-api/auth"
	"gorm.io/gorm"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
