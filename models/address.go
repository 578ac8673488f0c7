package models

import "time"

type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

type Address struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       string      `gorm:"index;not null" json:"user_id"`
	Type         AddressType `gorm:"type:VARCHAR(10);default:'home'" json:"type"`
	Label        string      `json:"label"`
	Line1        string      `gorm:"not null" json:"line1"`
	Line2        string      `json:"line2"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Pincode      string      `json:"pincode"`
	Latitude     *float64    `json:"latitude"`
	Longitude    *float64    `json:"longitude"`
	IsDefault    bool        `gorm:"default:false" json:"is_default"`
	ContactName  string      `json:"contact_name"`
	ContactPhone string      `json:"contact_phone"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AddressSnapshot is the copy of a delivery address embedded into an order at
// creation time. Later edits or deletions of the address never touch it.
type AddressSnapshot struct {
	Label        string   `json:"label"`
	Line1        string   `json:"line1"`
	Line2        string   `json:"line2"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
}

func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Label:        a.Label,
		Line1:        a.Line1,
		Line2:        a.Line2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
}
