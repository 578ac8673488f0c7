package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Offer struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"` // stored uppercase
	Description    string         `json:"description"`
	DiscountType   DiscountType   `gorm:"type:VARCHAR(12)" json:"discount_type"`
	DiscountValue  float64        `json:"discount_value"`
	MinOrderAmount float64        `json:"min_order_amount"` // 0 = no minimum
	MaxDiscount    float64        `json:"max_discount"`     // 0 = no cap
	ValidFrom      time.Time      `json:"valid_from"`
	ValidUntil     time.Time      `json:"valid_until"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// InWindow reports whether the offer's validity window contains t. The server
// query already filters on the window, but a fetched offer list can go stale
// while displayed, so callers re-check before applying.
func (o Offer) InWindow(t time.Time) bool {
	return !t.Before(o.ValidFrom) && !t.After(o.ValidUntil)
}

// Usable reports whether the offer may contribute a discount at time t.
func (o Offer) Usable(t time.Time) bool {
	return o.Active && o.InWindow(t)
}
