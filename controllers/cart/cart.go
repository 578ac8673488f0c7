package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quickbasket-in/storefront-api/models"
	"gorm.io/gorm"
)

// Quantity carries no binding: zero (or negative) is meaningful input for
// UpdateCartItem and means "remove the line".
type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func fetchProduct(db *gorm.DB, c *gin.Context, productID uint) (*models.Product, bool) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
		}
		return nil, false
	}
	return &product, true
}

func cartResponse(c *gin.Context, repo Repository) {
	lines, err := repo.Items()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    lines,
		"subtotal": subtotalOf(lines),
	})
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cartResponse(c, ForIdentity(db, identity))
	}
}

// POST /cart — stores an absolute quantity; quantity <= 0 removes the line.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, ok := fetchProduct(db, c, input.ProductID)
		if !ok {
			return
		}

		repo := ForIdentity(db, identity)
		if _, err := repo.SetQuantity(*product, input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		cartResponse(c, repo)
	}
}

// POST /cart/add — merges into an existing line instead of replacing it.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Quantity == 0 {
			input.Quantity = 1 // adding defaults to one unit
		}

		product, ok := fetchProduct(db, c, input.ProductID)
		if !ok {
			return
		}

		repo := ForIdentity(db, identity)
		if _, err := repo.Add(*product, input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		cartResponse(c, repo)
	}
}

// DELETE /cart/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		repo := ForIdentity(db, identity)
		if err := repo.Remove(uint(productID)); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		cartResponse(c, repo)
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := ForIdentity(db, identity).Clear(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

type MergeCartRequest struct {
	GuestID string `json:"guest_id" binding:"required"`
}

// POST /user/cart/merge — carries a guest cart into the signed-in user's
// cart, merging quantities line by line. The guest cart is cleared only after
// every line landed.
func MergeGuestCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok || identity.Guest {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req MergeCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		guestRepo := ForIdentity(db, Identity{ID: req.GuestID, Guest: true})
		userRepo := ForIdentity(db, identity)

		lines, err := guestRepo.Items()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}

		for _, line := range lines {
			var product models.Product
			if err := db.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // product removed since the guest added it
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
				return
			}
			if _, err := userRepo.Add(product, line.Quantity); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
				return
			}
		}

		if err := guestRepo.Clear(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear guest cart"})
			return
		}
		cartResponse(c, userRepo)
	}
}
