package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"` // Sale price, required
	MRP         float64        `json:"mrp"`
	Image       string         `json:"image"`
	Unit        string         `json:"unit"` // e.g. "500 g", "1 L"
	Stock       int            `json:"stock"`
	Categories  []Category     `gorm:"many2many:product_categories;" json:"categories"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
