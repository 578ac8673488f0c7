package models

import "time"

// WishlistItem is keyed by OwnerID, which is either a user id or a guest id;
// both identity paths share the table.
type WishlistItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerID      string    `gorm:"index;not null" json:"owner_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	ProductPrice float64   `json:"product_price"`
	AddedAt      time.Time `json:"added_at"`
}
