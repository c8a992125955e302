package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/smalltable/catering-app/models"
)

type IdentityKind int

const (
	IdentityAnonymous IdentityKind = iota
	IdentityCustomer
	IdentityVendor
	IdentityAdmin
)

// Identity is the acting caller, resolved once per request and passed
// explicitly into the services instead of being probed off a request context.
// VendorID is set only for vendors.
type Identity struct {
	Kind     IdentityKind
	UserID   uint
	VendorID uint
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{Kind: IdentityAnonymous}

func (id Identity) IsAnonymous() bool { return id.Kind == IdentityAnonymous }
func (id Identity) IsAdmin() bool     { return id.Kind == IdentityAdmin }
func (id Identity) IsVendor() bool    { return id.Kind == IdentityVendor }

// ResolveIdentity maps authenticated JWT claims to an Identity. For vendors
// the vendor profile is looked up so downstream code never has to. A vendor
// user without a profile yet acts as a plain customer.
func ResolveIdentity(db *gorm.DB, userID uint, role string) Identity {
	switch role {
	case models.RoleAdmin:
		return Identity{Kind: IdentityAdmin, UserID: userID}
	case models.RoleVendor:
		var profile models.VendorProfile
		err := db.Where("user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{Kind: IdentityCustomer, UserID: userID}
		}
		if err != nil {
			return Identity{Kind: IdentityCustomer, UserID: userID}
		}
		return Identity{Kind: IdentityVendor, UserID: userID, VendorID: profile.ID}
	default:
		return Identity{Kind: IdentityCustomer, UserID: userID}
	}
}
