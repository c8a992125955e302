package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a fixed-menu offering with a base per-guest price.
// Referenced by existing orders it may never be deleted (RESTRICT).
type Package struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	VendorID       uint            `gorm:"not null" json:"vendor_id"`
	Vendor         VendorProfile   `gorm:"foreignKey:VendorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name           string          `gorm:"type:varchar(150);not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	PricePerPerson decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_person"`
	MinGuests      uint            `gorm:"not null;default:1" json:"min_guests"`
	MaxGuests      *uint           `json:"max_guests,omitempty"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Categories []PackageCategory `gorm:"foreignKey:PackageID" json:"categories,omitempty"`
	Addons     []Addon           `gorm:"foreignKey:PackageID" json:"addons,omitempty"`
}

// PackageCategory is a menu section within a package (salads, mains, ...).
// min_select/max_select bound how many dishes a customer should pick from the
// section. The bounds are validated on write but not enforced during order
// creation.
type PackageCategory struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	PackageID uint    `gorm:"not null;uniqueIndex:idx_category_package_name" json:"package_id"`
	Package   Package `gorm:"foreignKey:PackageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string  `gorm:"type:varchar(150);not null;uniqueIndex:idx_category_package_name" json:"name"`
	Note      string  `gorm:"type:text" json:"note"`
	MinSelect uint    `gorm:"not null;default:0" json:"min_select"`
	MaxSelect *uint   `json:"max_select,omitempty"`
	IsActive  bool    `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []PackageCategoryItem `gorm:"foreignKey:PackageCategoryID" json:"items,omitempty"`
}

// PackageCategoryItem links a product into a package category, optionally as
// a chargeable upsell. Its premium flag and surcharge are copied into order
// rows at order time.
type PackageCategoryItem struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	PackageCategoryID   uint            `gorm:"not null;uniqueIndex:idx_item_category_product" json:"package_category_id"`
	PackageCategory     PackageCategory `gorm:"foreignKey:PackageCategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID           uint            `gorm:"not null;uniqueIndex:idx_item_category_product" json:"product_id"`
	Product             Product         `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product"`
	IsPremium           bool            `gorm:"not null;default:false" json:"is_premium"`
	ExtraPricePerPerson decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"extra_price_per_person"`
	IsActive            bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
