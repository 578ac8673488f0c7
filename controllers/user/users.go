package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/quickbasket-in/storefront-api/controllers/cart"
	"github.com/quickbasket-in/storefront-api/models"
	"gorm.io/gorm"
)

// GET /user/
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := cartControllers.IdentityFromContext(c)
		if !ok || identity.Guest {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.Preload("Addresses").First(&user, "id = ?", identity.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type UpdateUserInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PUT /user/
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := cartControllers.IdentityFromContext(c)
		if !ok || identity.Guest {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", identity.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Phone != "" {
			user.Phone = input.Phone
		}
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
