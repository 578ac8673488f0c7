package cartControllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickbasket-in/storefront-api/models"
	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("cart item not found")

// Identity is the cart owner: either a signed-in user or a guest session.
type Identity struct {
	ID    string
	Guest bool
}

// IdentityFromContext reads the identity the auth middleware stored.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	idVal, exists := c.Get("user_id")
	if !exists {
		return Identity{}, false
	}
	id, ok := idVal.(string)
	if !ok || id == "" {
		return Identity{}, false
	}
	role, _ := c.Get("role")
	return Identity{ID: id, Guest: role == "guest"}, true
}

// Line is one cart row, common to both storage paths.
type Line struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
}

// Repository is the per-identity cart mutation path. Signed-in users get the
// user cart tables, guests get the session-scoped guest tables; the choice is
// made once per request, never at individual call sites.
type Repository interface {
	Items() ([]Line, error)
	// SetQuantity stores an absolute quantity for a product; qty <= 0 removes
	// the row.
	SetQuantity(product models.Product, qty int) (*Line, error)
	// Add merges qty into an existing row or appends a new one.
	Add(product models.Product, qty int) (*Line, error)
	Remove(productID uint) error
	Clear() error
	Subtotal() (float64, error)
}

// ForIdentity selects the storage path for this identity.
func ForIdentity(db *gorm.DB, id Identity) Repository {
	if id.Guest {
		return &guestCartRepo{db: db, guestID: id.ID}
	}
	return &userCartRepo{db: db, userID: id.ID}
}

func subtotalOf(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// ---------------- user cart ----------------

type userCartRepo struct {
	db     *gorm.DB
	userID string
}

func (r *userCartRepo) cart() (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ?", r.userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: r.userID}
		err = r.db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *userCartRepo) Items() ([]Line, error) {
	cart, err := r.cart()
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := r.db.Where("cart_id = ?", cart.CartID).Order("added_at").Find(&items).Error; err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			UnitPrice:    it.ProductPrice,
			Quantity:     it.Quantity,
		})
	}
	return lines, nil
}

func (r *userCartRepo) SetQuantity(product models.Product, qty int) (*Line, error) {
	if qty <= 0 {
		if err := r.Remove(product.ID); err != nil && !errors.Is(err, ErrItemNotFound) {
			return nil, err
		}
		return nil, nil
	}

	cart, err := r.cart()
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = r.db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:       cart.CartID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			ProductPrice: product.Price,
			Quantity:     qty,
			AddedAt:      time.Now(),
		}
		if err := r.db.Create(&item).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else {
		item.Quantity = qty
		item.AddedAt = time.Now()
		if err := r.db.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	return &Line{
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductImage: item.ProductImage,
		UnitPrice:    item.ProductPrice,
		Quantity:     item.Quantity,
	}, nil
}

func (r *userCartRepo) Add(product models.Product, qty int) (*Line, error) {
	if qty <= 0 {
		return nil, nil
	}
	cart, err := r.cart()
	if err != nil {
		return nil, err
	}
	var item models.CartItem
	err = r.db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
	if err == nil {
		return r.SetQuantity(product, item.Quantity+qty)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return r.SetQuantity(product, qty)
}

func (r *userCartRepo) Remove(productID uint) error {
	cart, err := r.cart()
	if err != nil {
		return err
	}
	result := r.db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *userCartRepo) Clear() error {
	cart, err := r.cart()
	if err != nil {
		return err
	}
	return r.db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

func (r *userCartRepo) Subtotal() (float64, error) {
	lines, err := r.Items()
	if err != nil {
		return 0, err
	}
	return subtotalOf(lines), nil
}

// ---------------- guest cart ----------------

type guestCartRepo struct {
	db      *gorm.DB
	guestID string
}

func (r *guestCartRepo) cart() (*models.GuestCart, error) {
	var cart models.GuestCart
	err := r.db.Where("guest_id = ?", r.guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.GuestCart{GuestID: r.guestID}
		err = r.db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *guestCartRepo) Items() ([]Line, error) {
	cart, err := r.cart()
	if err != nil {
		return nil, err
	}
	var items []models.GuestCartItem
	if err := r.db.Where("cart_id = ?", cart.CartID).Order("added_at").Find(&items).Error; err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			UnitPrice:    it.ProductPrice,
			Quantity:     it.Quantity,
		})
	}
	return lines, nil
}

func (r *guestCartRepo) SetQuantity(product models.Product, qty int) (*Line, error) {
	if qty <= 0 {
		if err := r.Remove(product.ID); err != nil && !errors.Is(err, ErrItemNotFound) {
			return nil, err
		}
		return nil, nil
	}

	cart, err := r.cart()
	if err != nil {
		return nil, err
	}

	var item models.GuestCartItem
	err = r.db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.GuestCartItem{
			CartID:       cart.CartID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			ProductPrice: product.Price,
			Quantity:     qty,
			AddedAt:      time.Now(),
		}
		if err := r.db.Create(&item).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else {
		item.Quantity = qty
		item.AddedAt = time.Now()
		if err := r.db.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	return &Line{
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductImage: item.ProductImage,
		UnitPrice:    item.ProductPrice,
		Quantity:     item.Quantity,
	}, nil
}

func (r *guestCartRepo) Add(product models.Product, qty int) (*Line, error) {
	if qty <= 0 {
		return nil, nil
	}
	cart, err := r.cart()
	if err != nil {
		return nil, err
	}
	var item models.GuestCartItem
	err = r.db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
	if err == nil {
		return r.SetQuantity(product, item.Quantity+qty)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return r.SetQuantity(product, qty)
}

func (r *guestCartRepo) Remove(productID uint) error {
	cart, err := r.cart()
	if err != nil {
		return err
	}
	result := r.db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.GuestCartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *guestCartRepo) Clear() error {
	cart, err := r.cart()
	if err != nil {
		return err
	}
	return r.db.Where("cart_id = ?", cart.CartID).Delete(&models.GuestCartItem{}).Error
}

func (r *guestCartRepo) Subtotal() (float64, error) {
	lines, err := r.Items()
	if err != nil {
		return 0, err
	}
	return subtotalOf(lines), nil
}
