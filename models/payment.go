package models

import "time"

type PaymentIntentStatus string

const (
	PaymentIntentPending    PaymentIntentStatus = "pending"
	PaymentIntentProcessing PaymentIntentStatus = "processing"
	PaymentIntentSucceeded  PaymentIntentStatus = "succeeded"
	PaymentIntentFailed     PaymentIntentStatus = "failed"
	PaymentIntentCancelled  PaymentIntentStatus = "cancelled"
)

// PaymentIntent tracks one attempt to collect payment for an order,
// independent of the order's delivery status.
type PaymentIntent struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	OrderID          uint                `gorm:"index;not null" json:"order_id"`
	Amount           float64             `json:"amount"`
	Currency         string              `gorm:"type:VARCHAR(3);default:'INR'" json:"currency"`
	Method           string              `json:"method"`
	Status           PaymentIntentStatus `gorm:"type:VARCHAR(12);default:'pending'" json:"status"`
	GatewayOrderRef  string              `gorm:"index" json:"gateway_order_ref"`
	GatewayPaymentID string              `json:"gateway_payment_id"`
	GatewayResponse  string              `json:"gateway_response"` // opaque gateway payload or failure reason
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
