package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smalltable/catering-app/pricing"
)

// OrderAddon is one ordered addon. PriceSnapshot and PricingType are frozen
// from the Addon at order time; Subtotal is materialized and must always equal
// CalculateSubtotal for the order's current guest count. The order service
// recomputes it whenever quantity or guests change.
type OrderAddon struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	AddonID uint  `gorm:"not null" json:"addon_id"`
	Addon   Addon `gorm:"foreignKey:AddonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Quantity      uint            `gorm:"not null;default:1" json:"quantity"`
	PriceSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_snapshot"`
	PricingType   string          `gorm:"type:varchar(20);not null;default:'fixed'" json:"pricing_type"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CalculateSubtotal computes the addon line amount from the frozen snapshot
// values and the given guest count.
func (oa *OrderAddon) CalculateSubtotal(guests uint) (decimal.Decimal, error) {
	return pricing.AddonLine(oa.PriceSnapshot, oa.PricingType, int(oa.Quantity), int(guests))
}
