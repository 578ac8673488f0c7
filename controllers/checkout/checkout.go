package checkoutControllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	cartControllers "github.com/quickbasket-in/storefront-api/controllers/cart"
	offerControllers "github.com/quickbasket-in/storefront-api/controllers/offer"
	orderControllers "github.com/quickbasket-in/storefront-api/controllers/order"
	paymentControllers "github.com/quickbasket-in/storefront-api/controllers/payment"
	"github.com/quickbasket-in/storefront-api/models"
	"github.com/quickbasket-in/storefront-api/pricing"
	"gorm.io/gorm"
)

// Placement failure reasons. Validation failures happen before any write;
// later failures leave already-written rows in place for reconciliation, the
// orchestrator never rolls back.
var (
	ErrMissingAddress       = errors.New("no delivery address selected")
	ErrMissingPaymentMethod = errors.New("no payment method selected")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrBelowMinimum         = errors.New("order is below the minimum amount")
	ErrOrderCreateFailed    = errors.New("order create failed")
	ErrOrderItemsFailed     = errors.New("order items persist failed")
	ErrPaymentIntentFailed  = errors.New("payment intent failed")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrPaymentCancelled     = errors.New("payment cancelled")
)

// Gateway is the payment processor boundary the orchestrator drives.
// Satisfied by paymentControllers.Client.
type Gateway interface {
	CreateOrder(amountMinor int64, currency, receipt string) (*paymentControllers.GatewayOrder, error)
	VerifySignature(orderRef, paymentID, signature string) bool
}

type PlaceOrderRequest struct {
	AddressID        uint     `json:"address_id"`
	PaymentMethod    string   `json:"payment_method"`
	OfferCode        string   `json:"offer_code"`
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
}

// CheckoutPayload carries what the client needs to open the hosted checkout.
type CheckoutPayload struct {
	GatewayOrderRef string `json:"gateway_order_ref"`
	AmountMinor     int64  `json:"amount_minor"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

// PlacementResult is the outcome of one placement run. Checkout is non-nil
// when the client still has to complete a hosted payment.
type PlacementResult struct {
	Order    *models.Order         `json:"order"`
	Intent   *models.PaymentIntent `json:"payment_intent"`
	Checkout *CheckoutPayload      `json:"checkout,omitempty"`
}

func validPaymentMethod(method string) bool {
	switch method {
	case "cash", "card", "upi", "wallet":
		return true
	}
	return false
}

// OrderNumber builds the display token for a new order. It is
// timestamp-derived and not guaranteed unique under concurrent generation;
// the caller keeps placement single-flight per session.
func OrderNumber() string {
	return "ORD-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

// validate covers the checks that need no database access. It runs before
// anything is read or written.
func validate(req PlaceOrderRequest) error {
	if req.AddressID == 0 {
		return ErrMissingAddress
	}
	if !validPaymentMethod(req.PaymentMethod) {
		return ErrMissingPaymentMethod
	}
	return nil
}

// PlaceOrder runs one checkout attempt: validate, create the order row,
// persist item snapshots, create the payment intent, and for cash finalize
// immediately. Online methods return a checkout payload; CompletePayment
// finishes the run when the hosted checkout reports back.
//
// A failure after the order row is written leaves that row in place on
// purpose. Support tooling recovers orphaned orders; this code does not.
func PlaceOrder(db *gorm.DB, gw Gateway, hub *orderControllers.Hub,
	identity cartControllers.Identity, req PlaceOrderRequest) (*PlacementResult, error) {

	// --- Validating ---
	if err := validate(req); err != nil {
		return nil, err
	}

	var address models.Address
	if err := db.Where("user_id = ? AND id = ?", identity.ID, req.AddressID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingAddress
		}
		return nil, err
	}

	repo := cartControllers.ForIdentity(db, identity)
	lines, err := repo.Items()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}
	// Minimum order gate on the pre-discount subtotal, re-asserted here even
	// though the UI already blocks below-minimum carts.
	if subtotal < pricing.MinimumOrderAmount {
		return nil, fmt.Errorf("%w: add %.0f more", ErrBelowMinimum, pricing.Shortfall(subtotal))
	}

	// --- CreatingOrder ---
	// The discount is recomputed here rather than trusted from the client; a
	// code that stopped being valid since the coupon step just contributes
	// zero.
	var discount float64
	var offer *models.Offer
	if req.OfferCode != "" {
		if o, err := offerControllers.ValidateCode(db, req.OfferCode); err == nil {
			offer = o
			discount = offerControllers.DiscountFor(o, subtotal)
		}
	}

	var addrCoords *pricing.Coordinates
	if address.Latitude != nil && address.Longitude != nil {
		addrCoords = &pricing.Coordinates{Latitude: *address.Latitude, Longitude: *address.Longitude}
	}
	var current *pricing.Coordinates
	if req.CurrentLatitude != nil && req.CurrentLongitude != nil {
		current = &pricing.Coordinates{Latitude: *req.CurrentLatitude, Longitude: *req.CurrentLongitude}
	}
	quote := pricing.BuildQuote(subtotal, discount, addrCoords, current)

	order := models.Order{
		OrderNumber:     OrderNumber(),
		UserID:          identity.ID,
		Subtotal:        quote.Subtotal,
		DiscountAmount:  quote.Discount,
		DeliveryFee:     quote.DeliveryFee,
		HandlingCharge:  quote.HandlingCharge,
		TotalAmount:     quote.Total,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusConfirmed,
		PaymentStatus:   models.PaymentStatusPending,
		DeliveryAddress: address.Snapshot(),
	}
	if offer != nil {
		order.OfferID = &offer.ID
		order.OfferCode = offer.Code
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	// --- PersistingItems ---
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			OrderID:      order.ID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			UnitPrice:    l.UnitPrice,
			Quantity:     l.Quantity,
			LineTotal:    l.UnitPrice * float64(l.Quantity),
		})
	}
	if err := db.Create(&items).Error; err != nil {
		// Order row stays; an order with no items is a reconciliation target.
		return nil, fmt.Errorf("%w: %v", ErrOrderItemsFailed, err)
	}

	// --- InitiatingPayment ---
	if req.PaymentMethod == "cash" {
		intent, err := paymentControllers.CreateIntent(db, order.ID, quote.Total, "cash",
			models.PaymentIntentSucceeded, "")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentIntentFailed, err)
		}
		finalized, err := finalize(db, hub, identity, order.ID)
		if err != nil {
			return nil, err
		}
		return &PlacementResult{Order: finalized, Intent: intent}, nil
	}

	receipt := uuid.NewString()
	gwOrder, err := gw.CreateOrder(paymentControllers.ToMinorUnits(quote.Total), "INR", receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentIntentFailed, err)
	}
	intent, err := paymentControllers.CreateIntent(db, order.ID, quote.Total, req.PaymentMethod,
		models.PaymentIntentPending, gwOrder.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentIntentFailed, err)
	}

	payload := &CheckoutPayload{
		GatewayOrderRef: gwOrder.ID,
		AmountMinor:     gwOrder.Amount,
		Currency:        gwOrder.Currency,
		Description:     "Order " + order.OrderNumber,
		Name:            order.DeliveryAddress.ContactName,
		Phone:           order.DeliveryAddress.ContactPhone,
	}
	var user models.User
	if err := db.First(&user, "id = ?", identity.ID).Error; err == nil {
		payload.Email = user.Email
		if payload.Name == "" {
			payload.Name = user.Name
		}
		if payload.Phone == "" {
			payload.Phone = user.Phone
		}
	}

	return &PlacementResult{Order: &order, Intent: intent, Checkout: payload}, nil
}

type ConfirmPaymentRequest struct {
	OrderID          uint   `json:"order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
	Cancelled        bool   `json:"cancelled"`
}

// CompletePayment resumes a placement whose hosted checkout has returned. A
// cancelled or unverifiable checkout marks the intent failed and leaves the
// order confirmed with payment pending — the cart is not cleared.
func CompletePayment(db *gorm.DB, gw Gateway, hub *orderControllers.Hub,
	identity cartControllers.Identity, req ConfirmPaymentRequest) (*models.Order, error) {

	var order models.Order
	if err := db.Where("user_id = ? AND id = ?", identity.ID, req.OrderID).
		First(&order).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	intent, err := paymentControllers.LatestForOrder(db, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if intent.Status == models.PaymentIntentSucceeded {
		return &order, nil // already completed, e.g. webhook raced the client
	}

	if req.Cancelled {
		if err := paymentControllers.MarkFailed(db, intent, "cancelled by user"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		return nil, ErrPaymentCancelled
	}

	if !gw.VerifySignature(intent.GatewayOrderRef, req.GatewayPaymentID, req.Signature) {
		if err := paymentControllers.MarkFailed(db, intent, "signature verification failed"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		return nil, fmt.Errorf("%w: signature verification failed", ErrPaymentFailed)
	}

	if err := paymentControllers.MarkSucceeded(db, intent, req.GatewayPaymentID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	order.PaymentStatus = models.PaymentStatusPaid
	if err := db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	return finalize(db, hub, identity, order.ID)
}

// finalize clears the cart, reloads the order with its items and announces
// it. Runs only after a successful (or cash-immediate) payment result.
func finalize(db *gorm.DB, hub *orderControllers.Hub,
	identity cartControllers.Identity, orderID uint) (*models.Order, error) {

	if err := cartControllers.ForIdentity(db, identity).Clear(); err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	if hub != nil {
		hub.BroadcastOrder(order)
	}
	return &order, nil
}
