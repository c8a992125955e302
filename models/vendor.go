package models

import "time"

// VendorProfile holds the business details of a vendor. One profile per user;
// new profiles stay inactive until an admin approves them.
type VendorProfile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	BusinessName string `gorm:"type:varchar(200);not null" json:"business_name"`
	Description  string `gorm:"type:text" json:"description"`
	KashrutLevel string `gorm:"type:varchar(100)" json:"kashrut_level"`
	Address      string `gorm:"type:varchar(300)" json:"address"`
	IsActive     bool   `gorm:"not null;default:false" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
