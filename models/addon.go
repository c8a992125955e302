package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smalltable/catering-app/pricing"
)

// Pricing type values for Addon, shared with the pricing engine.
const (
	PricingFixed     = pricing.TypeFixed
	PricingPerPerson = pricing.TypePerPerson
)

// AddonCategory groups addons system-wide (drinks, staff, equipment, ...).
// Managed by admins.
type AddonCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(150);unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Addon is an optional extra offered within a specific package, priced either
// per order (fixed) or per guest.
type Addon struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	PackageID   uint          `gorm:"not null;uniqueIndex:idx_addon_package_name" json:"package_id"`
	Package     Package       `gorm:"foreignKey:PackageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CategoryID  uint          `gorm:"not null" json:"category_id"`
	Category    AddonCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name        string        `gorm:"type:varchar(150);not null;uniqueIndex:idx_addon_package_name" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	PricingType string          `gorm:"type:varchar(20);not null;default:'fixed'" json:"pricing_type"`
	IsIncluded  bool            `gorm:"not null;default:false" json:"is_included"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PriceForGuests returns the addon's contribution for a party of the given
// size, before any quantity multiplier.
func (a *Addon) PriceForGuests(guests uint) decimal.Decimal {
	if a.PricingType == PricingPerPerson {
		return pricing.Round2(a.Price.Mul(decimal.NewFromInt(int64(guests))))
	}
	return pricing.Round2(a.Price)
}
