package addressControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/quickbasket-in/storefront-api/controllers/cart"
	"github.com/quickbasket-in/storefront-api/models"
	"gorm.io/gorm"
)

type AddressInput struct {
	Type         string   `json:"type" binding:"omitempty,oneof=home work other"`
	Label        string   `json:"label"`
	Line1        string   `json:"line1" binding:"required"`
	Line2        string   `json:"line2"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	IsDefault    bool     `json:"is_default"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
}

func userIdentity(c *gin.Context) (cartControllers.Identity, bool) {
	identity, ok := cartControllers.IdentityFromContext(c)
	if !ok || identity.Guest {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return cartControllers.Identity{}, false
	}
	return identity, true
}

// GET /user/addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := userIdentity(c)
		if !ok {
			return
		}
		var addresses []models.Address
		if err := db.Where("user_id = ?", identity.ID).
			Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /user/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := userIdentity(c)
		if !ok {
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		addrType := models.AddressTypeHome
		if input.Type != "" {
			addrType = models.AddressType(input.Type)
		}

		address := models.Address{
			UserID:       identity.ID,
			Type:         addrType,
			Label:        input.Label,
			Line1:        input.Line1,
			Line2:        input.Line2,
			City:         input.City,
			State:        input.State,
			Pincode:      input.Pincode,
			Latitude:     input.Latitude,
			Longitude:    input.Longitude,
			IsDefault:    input.IsDefault,
			ContactName:  input.ContactName,
			ContactPhone: input.ContactPhone,
		}

		// A new default unsets any previous one; at most one default per user.
		err := db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := tx.Model(&models.Address{}).Where("user_id = ?", identity.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// PUT /user/addresses/:addressID
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := userIdentity(c)
		if !ok {
			return
		}

		var address models.Address
		if err := db.Where("user_id = ? AND id = ?", identity.ID, c.Param("addressID")).
			First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Type != "" {
			address.Type = models.AddressType(input.Type)
		}
		address.Label = input.Label
		address.Line1 = input.Line1
		address.Line2 = input.Line2
		address.City = input.City
		address.State = input.State
		address.Pincode = input.Pincode
		address.Latitude = input.Latitude
		address.Longitude = input.Longitude
		address.ContactName = input.ContactName
		address.ContactPhone = input.ContactPhone

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault && !address.IsDefault {
				if err := tx.Model(&models.Address{}).Where("user_id = ?", identity.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
				address.IsDefault = true
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// POST /user/addresses/:addressID/default
func SetDefaultAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := userIdentity(c)
		if !ok {
			return
		}

		addressID := c.Param("addressID")
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", identity.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			result := tx.Model(&models.Address{}).
				Where("user_id = ? AND id = ?", identity.ID, addressID).
				Update("is_default", true)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
	}
}

// DELETE /user/addresses/:addressID — orders hold a snapshot, so deleting an
// address never touches order history.
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := userIdentity(c)
		if !ok {
			return
		}

		result := db.Where("user_id = ? AND id = ?", identity.ID, c.Param("addressID")).
			Delete(&models.Address{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
