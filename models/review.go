package models

import "time"

// Review is a customer's rating of a vendor, tied to a completed booking.
// At most one review per order.
type Review struct {
	ID       uint          `gorm:"primaryKey" json:"id"`
	UserID   uint          `gorm:"not null;index" json:"user_id"`
	User     User          `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VendorID uint          `gorm:"not null;index" json:"vendor_id"`
	Vendor   VendorProfile `gorm:"foreignKey:VendorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderID  uint          `gorm:"uniqueIndex;not null" json:"order_id"`
	Order    Order         `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Rating   uint   `gorm:"not null" json:"rating"` // 1..5
	Title    string `gorm:"type:varchar(200)" json:"title"`
	Comment  string `gorm:"type:text" json:"comment"`
	IsPublic bool   `gorm:"not null;default:true" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
