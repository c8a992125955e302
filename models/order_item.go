package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smalltable/catering-app/pricing"
)

// OrderItem is one chosen dish in an order. IsPremium and ExtraPricePerPerson
// are frozen from the matching PackageCategoryItem at order time, so later
// catalog edits never alter past orders.
type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	PackageCategoryID uint            `gorm:"not null" json:"package_category_id"`
	PackageCategory   PackageCategory `gorm:"foreignKey:PackageCategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ProductID         uint            `gorm:"not null" json:"product_id"`
	Product           Product         `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`

	IsPremium           bool            `gorm:"not null;default:false" json:"is_premium"`
	ExtraPricePerPerson decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"extra_price_per_person"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ExtraSubtotal is the dish's surcharge for the whole party.
func (oi *OrderItem) ExtraSubtotal(guests uint) decimal.Decimal {
	return pricing.ItemExtra(oi.ExtraPricePerPerson, int(guests))
}
