package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the root aggregate: a customer booking of one package for a party
// of guests. It owns its item and addon rows (cascade) and holds protected
// references into the catalog so history can never be orphaned.
//
// TotalPrice is derived; it is recomputed by the order service on creation and
// on guests-count changes, never inside a save hook.
type Order struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Reference   string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	User        User          `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VendorID    uint          `gorm:"not null;index" json:"vendor_id"`
	Vendor      VendorProfile `gorm:"foreignKey:VendorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	PackageID   uint          `gorm:"not null" json:"package_id"`
	Package     Package       `gorm:"foreignKey:PackageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	GuestsCount uint          `gorm:"not null" json:"guests_count"`
	Status      string        `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`
	Note        string          `gorm:"type:text" json:"note"`
	CreatedAt   time.Time       `json:"created_at"`

	Items  []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`
	Addons []OrderAddon `gorm:"foreignKey:OrderID" json:"addons"`
}
