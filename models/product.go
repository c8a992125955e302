package models

import "time"

// Product is a single dish in a vendor's kitchen. It becomes orderable only
// through a PackageCategoryItem linking it into a package.
type Product struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	VendorID    uint          `gorm:"not null;index:idx_products_vendor_available" json:"vendor_id"`
	Vendor      VendorProfile `gorm:"foreignKey:VendorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	// Free-text grouping for the vendor's own organisation, e.g. "salads".
	Category    string `gorm:"type:varchar(100);index" json:"category"`
	IsAvailable bool   `gorm:"not null;default:true;index:idx_products_vendor_available" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
