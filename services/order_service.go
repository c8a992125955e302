package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/models"
	"github.com/smalltable/catering-app/pricing"
	"github.com/smalltable/catering-app/utils"
)

// OrderService composes orders: it validates choices against the catalog,
// freezes price snapshots, persists the aggregate atomically and keeps the
// stored total in sync with the frozen rows.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type ItemChoice struct {
	CategoryID uint `json:"category_id" binding:"required"`
	ProductID  uint `json:"product_id" binding:"required"`
}

type AddonChoice struct {
	AddonID  uint `json:"addon_id" binding:"required"`
	Quantity uint `json:"quantity"`
}

type CreateOrderInput struct {
	PackageID   uint          `json:"package_id" binding:"required"`
	GuestsCount uint          `json:"guests_count"`
	Note        string        `json:"note"`
	Items       []ItemChoice  `json:"items"`
	Addons      []AddonChoice `json:"addons"`
}

// OrderPatch carries the only fields that stay mutable after creation.
// Package, vendor, user and the item/addon rows are immutable once the order
// exists.
type OrderPatch struct {
	GuestsCount *uint   `json:"guests_count"`
	Note        *string `json:"note"`
	Status      *string `json:"status"`
}

// scoped returns the order query visible to the identity: customers see their
// own orders, vendors the orders addressed to them, admins everything.
func (s *OrderService) scoped(identity Identity) *gorm.DB {
	q := s.DB.Model(&models.Order{})
	switch identity.Kind {
	case IdentityAdmin:
		return q
	case IdentityVendor:
		return q.Where("vendor_id = ?", identity.VendorID)
	case IdentityCustomer:
		return q.Where("user_id = ?", identity.UserID)
	default:
		return q.Where("1 = 0")
	}
}

// CreateOrder turns a (package, guests, dish choices, addon choices) request
// into a persisted order with a frozen total. The whole sequence runs in one
// transaction; any failure leaves no rows behind.
func (s *OrderService) CreateOrder(identity Identity, in CreateOrderInput) (*models.Order, error) {
	if identity.IsAnonymous() {
		return nil, &ValidationError{Reason: "an authenticated user is required to place an order"}
	}

	var order models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pkg models.Package
		if err := tx.First(&pkg, in.PackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "package"}
			}
			return err
		}
		if !pkg.IsActive {
			return &InvalidStateError{Reason: "package is not active"}
		}
		if in.GuestsCount == 0 {
			return &ValidationError{Reason: "guests count must be greater than zero"}
		}

		order = models.Order{
			Reference:   "ORD-" + uuid.NewString(),
			UserID:      identity.UserID,
			VendorID:    pkg.VendorID, // derived from the package, never client-supplied
			PackageID:   pkg.ID,
			GuestsCount: in.GuestsCount,
			Status:      models.OrderStatusNew,
			Note:        in.Note,
			TotalPrice:  decimal.Zero,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, choice := range in.Items {
			var category models.PackageCategory
			if err := tx.First(&category, choice.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "package category"}
				}
				return err
			}
			if category.PackageID != pkg.ID {
				return &ValidationError{Reason: fmt.Sprintf("category %d does not belong to the selected package", category.ID)}
			}

			var catalogItem models.PackageCategoryItem
			err := tx.Where("package_category_id = ? AND product_id = ? AND is_active = ?",
				category.ID, choice.ProductID, true).First(&catalogItem).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ValidationError{Reason: fmt.Sprintf("dish %d is not available in this category", choice.ProductID)}
			}
			if err != nil {
				return err
			}

			item := models.OrderItem{
				OrderID:             order.ID,
				PackageCategoryID:   category.ID,
				ProductID:           choice.ProductID,
				IsPremium:           catalogItem.IsPremium,
				ExtraPricePerPerson: catalogItem.ExtraPricePerPerson,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		for _, choice := range in.Addons {
			if choice.Quantity < 1 {
				return &ValidationError{Reason: "addon quantity must be at least 1"}
			}

			var addon models.Addon
			if err := tx.First(&addon, choice.AddonID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "addon"}
				}
				return err
			}
			if addon.PackageID != pkg.ID {
				return &ValidationError{Reason: fmt.Sprintf("addon %d does not belong to the selected package", addon.ID)}
			}
			if !addon.IsActive {
				return &ValidationError{Reason: fmt.Sprintf("addon %d is not available", addon.ID)}
			}

			subtotal, err := pricing.AddonLine(addon.Price, addon.PricingType, int(choice.Quantity), int(in.GuestsCount))
			if err != nil {
				return &ValidationError{Reason: err.Error()}
			}

			orderAddon := models.OrderAddon{
				OrderID:       order.ID,
				AddonID:       addon.ID,
				Quantity:      choice.Quantity,
				PriceSnapshot: addon.Price,
				PricingType:   addon.PricingType,
				Subtotal:      subtotal,
			}
			if err := tx.Create(&orderAddon).Error; err != nil {
				return err
			}
		}

		return s.UpdateTotalPrice(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s created: user=%d vendor=%d package=%d guests=%d total=%s",
		order.Reference, order.UserID, order.VendorID, order.PackageID, order.GuestsCount,
		utils.FormatCurrency(order.TotalPrice))

	return s.GetOrder(Identity{Kind: IdentityAdmin}, order.ID)
}

// GetOrder fetches one order with its item and addon rows, scoped to what the
// identity may see. Orders outside that scope are reported as not found.
func (s *OrderService) GetOrder(identity Identity, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.scoped(identity).
		Preload("Items").
		Preload("Addons").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "order"}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the identity's visible orders, optionally filtered by
// status, newest first.
func (s *OrderService) ListOrders(identity Identity, status string) ([]models.Order, error) {
	q := s.scoped(identity).Preload("Items").Preload("Addons").Order("created_at DESC")
	if status != "" {
		if !models.ValidOrderStatus(status) {
			return nil, &ValidationError{Reason: "invalid order status filter"}
		}
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrder applies a patch to the mutable order fields. A guests-count
// change recomputes the total from the existing frozen rows; nothing else
// about the line items can be edited after creation.
func (s *OrderService) UpdateOrder(identity Identity, orderID uint, patch OrderPatch) (*models.Order, error) {
	order, err := s.GetOrder(identity, orderID)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && !models.ValidOrderStatus(*patch.Status) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid order status %q", *patch.Status)}
	}
	if patch.GuestsCount != nil && *patch.GuestsCount == 0 {
		return nil, &ValidationError{Reason: "guests count must be greater than zero"}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if patch.Status != nil {
			updates["status"] = *patch.Status
			order.Status = *patch.Status
		}
		if patch.Note != nil {
			updates["note"] = *patch.Note
			order.Note = *patch.Note
		}
		guestsChanged := false
		if patch.GuestsCount != nil && *patch.GuestsCount != order.GuestsCount {
			updates["guests_count"] = *patch.GuestsCount
			order.GuestsCount = *patch.GuestsCount
			guestsChanged = true
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if guestsChanged {
			return s.UpdateTotalPrice(tx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(identity, orderID)
}

// DeleteOrder removes an order that has not started processing. The item and
// addon rows cascade with it.
func (s *OrderService) DeleteOrder(identity Identity, orderID uint) error {
	order, err := s.GetOrder(identity, orderID)
	if err != nil {
		return err
	}
	if identity.IsVendor() {
		return &ValidationError{Reason: "only the customer or an admin may delete an order"}
	}
	if order.Status != models.OrderStatusNew {
		return &InvalidStateError{Reason: "only new orders can be deleted"}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderAddon{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, order.ID).Error
	})
}

// UpdateTotalPrice is the single recomputation point for the derived money
// fields. It refreshes each addon subtotal from its frozen snapshot and the
// order's current guest count, then recomputes and stores the total.
// Calling it twice without other mutation is a no-op the second time.
func (s *OrderService) UpdateTotalPrice(tx *gorm.DB, order *models.Order) error {
	var pkg models.Package
	if err := tx.First(&pkg, order.PackageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "package"}
		}
		return err
	}

	var addons []models.OrderAddon
	if err := tx.Where("order_id = ?", order.ID).Find(&addons).Error; err != nil {
		return err
	}
	addonSubtotals := make([]decimal.Decimal, 0, len(addons))
	for i := range addons {
		subtotal, err := addons[i].CalculateSubtotal(order.GuestsCount)
		if err != nil {
			return &ValidationError{Reason: err.Error()}
		}
		if !subtotal.Equal(addons[i].Subtotal) {
			if err := tx.Model(&models.OrderAddon{}).Where("id = ?", addons[i].ID).
				Update("subtotal", subtotal).Error; err != nil {
				return err
			}
		}
		addonSubtotals = append(addonSubtotals, subtotal)
	}

	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}
	itemExtras := make([]decimal.Decimal, 0, len(items))
	for i := range items {
		itemExtras = append(itemExtras, items[i].ExtraSubtotal(order.GuestsCount))
	}

	total := pricing.OrderTotal(pkg.PricePerPerson, int(order.GuestsCount), itemExtras, addonSubtotals)
	order.TotalPrice = total

	return tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("total_price", total).Error
}
