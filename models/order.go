package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (storefront delivery flow)
	OrderStatusPending        OrderStatus = "pending"          // Order placed, awaiting confirmation
	OrderStatusConfirmed      OrderStatus = "confirmed"        // Accepted by the store
	OrderStatusPreparing      OrderStatus = "preparing"        // Being packed
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // With the delivery partner
	OrderStatusDelivered      OrderStatus = "delivered"        // Customer received the order
	OrderStatusCancelled      OrderStatus = "cancelled"        // Cancelled before preparation

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// statusRank orders the forward delivery flow. Cancelled sits outside it.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:        0,
	OrderStatusConfirmed:      1,
	OrderStatusPreparing:      2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
}

// CanTransition reports whether an order may move from one status to the
// next. Forward moves only; cancellation is allowed from pending or
// confirmed; delivered and cancelled are terminal.
func CanTransition(from, to OrderStatus) bool {
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return from == OrderStatusPending || from == OrderStatusConfirmed
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          string          `gorm:"not null;index" json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        float64         `json:"subtotal"`
	DiscountAmount  float64         `json:"discount_amount"`
	DeliveryFee     float64         `json:"delivery_fee"`
	HandlingCharge  float64         `json:"handling_charge"`
	TotalAmount     float64         `json:"total_amount"`
	OfferID         *uint           `json:"offer_id"`
	OfferCode       string          `json:"offer_code"`
	PaymentMethod   string          `json:"payment_method"` // "cash", "card", "upi", "wallet"
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	DeliveryAddress AddressSnapshot `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CanCancel is the user-facing cancellation rule: only before preparation
// starts.
func (o Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// CanReorder permits replaying items into the cart for delivered orders only.
func (o Order) CanReorder() bool {
	return o.Status == OrderStatusDelivered
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	LineTotal    float64 `json:"line_total"`
}
