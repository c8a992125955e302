package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/middlewares"
	"github.com/smalltable/catering-app/models"
	"github.com/smalltable/catering-app/utils"
)

type AddonController struct {
	DB *gorm.DB
}

func NewAddonController(db *gorm.DB) *AddonController {
	return &AddonController{DB: db}
}

// --- Addon categories (system-wide, admin-managed) ---

func (ac *AddonController) GetAllAddonCategories(c *gin.Context) {
	var categories []models.AddonCategory
	if err := ac.DB.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of addon categories", categories)
}

func (ac *AddonController) CreateAddonCategory(c *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.AddonCategory{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := ac.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Addon category created", category)
}

// --- Addons (per package, vendor-managed) ---

func (ac *AddonController) GetPackageAddons(c *gin.Context) {
	packageID, ok := paramID(c, "package_id")
	if !ok {
		return
	}

	var addons []models.Addon
	if err := ac.DB.Where("package_id = ? AND is_active = ?", packageID, true).
		Order("name").Find(&addons).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of addons", addons)
}

func (ac *AddonController) ownedPackage(c *gin.Context, packageID uint) (*models.Package, bool) {
	identity := middlewares.CurrentIdentity(c)

	var pkg models.Package
	if err := ac.DB.First(&pkg, packageID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("package not found"))
		return nil, false
	}
	if !identity.IsAdmin() && pkg.VendorID != identity.VendorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return nil, false
	}
	return &pkg, true
}

func (ac *AddonController) CreateAddon(c *gin.Context) {
	packageID, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	pkg, ok := ac.ownedPackage(c, packageID)
	if !ok {
		return
	}

	type request struct {
		CategoryID  uint            `json:"category_id" binding:"required"`
		Name        string          `json:"name" binding:"required"`
		Price       decimal.Decimal `json:"price"`
		PricingType string          `json:"pricing_type"`
		IsIncluded  bool            `json:"is_included"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price cannot be negative"))
		return
	}
	if req.PricingType == "" {
		req.PricingType = models.PricingFixed
	}
	if req.PricingType != models.PricingFixed && req.PricingType != models.PricingPerPerson {
		utils.RespondError(c, http.StatusBadRequest, errors.New("pricing_type must be fixed or per_person"))
		return
	}

	var category models.AddonCategory
	if err := ac.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("addon category not found"))
		return
	}

	addon := models.Addon{
		PackageID:   pkg.ID,
		CategoryID:  category.ID,
		Name:        req.Name,
		Price:       req.Price,
		PricingType: req.PricingType,
		IsIncluded:  req.IsIncluded,
		IsActive:    true,
	}
	if err := ac.DB.Create(&addon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Addon created", addon)
}

func (ac *AddonController) UpdateAddon(c *gin.Context) {
	packageID, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	addonID, ok := paramID(c, "addon_id")
	if !ok {
		return
	}
	pkg, ok := ac.ownedPackage(c, packageID)
	if !ok {
		return
	}

	var addon models.Addon
	if err := ac.DB.First(&addon, addonID).Error; err != nil || addon.PackageID != pkg.ID {
		utils.RespondError(c, http.StatusNotFound, errors.New("addon not found in this package"))
		return
	}

	type request struct {
		Name        *string          `json:"name"`
		Price       *decimal.Decimal `json:"price"`
		PricingType *string          `json:"pricing_type"`
		IsIncluded  *bool            `json:"is_included"`
		IsActive    *bool            `json:"is_active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		addon.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price cannot be negative"))
			return
		}
		addon.Price = *req.Price
	}
	if req.PricingType != nil {
		if *req.PricingType != models.PricingFixed && *req.PricingType != models.PricingPerPerson {
			utils.RespondError(c, http.StatusBadRequest, errors.New("pricing_type must be fixed or per_person"))
			return
		}
		addon.PricingType = *req.PricingType
	}
	if req.IsIncluded != nil {
		addon.IsIncluded = *req.IsIncluded
	}
	if req.IsActive != nil {
		addon.IsActive = *req.IsActive
	}

	if err := ac.DB.Save(&addon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Addon updated", addon)
}

// DeleteAddon refuses removal while any order addon references it.
func (ac *AddonController) DeleteAddon(c *gin.Context) {
	packageID, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	addonID, ok := paramID(c, "addon_id")
	if !ok {
		return
	}
	pkg, ok := ac.ownedPackage(c, packageID)
	if !ok {
		return
	}

	var addon models.Addon
	if err := ac.DB.First(&addon, addonID).Error; err != nil || addon.PackageID != pkg.ID {
		utils.RespondError(c, http.StatusNotFound, errors.New("addon not found in this package"))
		return
	}

	var referenced int64
	if err := ac.DB.Model(&models.OrderAddon{}).Where("addon_id = ?", addon.ID).Count(&referenced).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if referenced > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("addon is referenced by existing orders"))
		return
	}

	if err := ac.DB.Delete(&addon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Addon deleted", nil)
}
