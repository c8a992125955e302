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

type PackageController struct {
	DB *gorm.DB
}

func NewPackageController(db *gorm.DB) *PackageController {
	return &PackageController{DB: db}
}

// GetAllPackages -> public list of active packages with their menu structure
// and addons preloaded.
func (pc *PackageController) GetAllPackages(c *gin.Context) {
	query := pc.DB.Where("is_active = ?", true)
	if vendor := c.Query("vendor_id"); vendor != "" {
		query = query.Where("vendor_id = ?", vendor)
	}

	var packages []models.Package
	err := query.
		Preload("Categories", "is_active = ?", true).
		Preload("Categories.Items", "is_active = ?", true).
		Preload("Categories.Items.Product").
		Preload("Addons", "is_active = ?", true).
		Order("created_at DESC").
		Find(&packages).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of packages", packages)
}

func (pc *PackageController) GetPackageByID(c *gin.Context) {
	id, ok := paramID(c, "package_id")
	if !ok {
		return
	}

	var pkg models.Package
	err := pc.DB.
		Preload("Categories").
		Preload("Categories.Items").
		Preload("Categories.Items.Product").
		Preload("Addons").
		First(&pkg, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("package not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Package detail", pkg)
}

type packageRequest struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	MinGuests      uint            `json:"min_guests"`
	MaxGuests      *uint           `json:"max_guests"`
	IsActive       *bool           `json:"is_active"`
}

func (r *packageRequest) validate() error {
	if r.PricePerPerson.IsNegative() {
		return errors.New("price_per_person cannot be negative")
	}
	if r.MaxGuests != nil && r.MinGuests > *r.MaxGuests {
		return errors.New("min_guests cannot exceed max_guests")
	}
	return nil
}

// CreatePackage -> vendor publishes a new fixed-menu offering.
func (pc *PackageController) CreatePackage(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if !identity.IsVendor() {
		utils.RespondError(c, http.StatusForbidden, errors.New("a vendor profile is required"))
		return
	}

	var req packageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pkg := models.Package{
		VendorID:       identity.VendorID,
		Name:           req.Name,
		Description:    req.Description,
		PricePerPerson: req.PricePerPerson,
		MinGuests:      req.MinGuests,
		MaxGuests:      req.MaxGuests,
		IsActive:       true,
	}
	if pkg.MinGuests == 0 {
		pkg.MinGuests = 1
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := pc.DB.Create(&pkg).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Package %d created by vendor %d", pkg.ID, pkg.VendorID)
	utils.RespondJSON(c, http.StatusCreated, "Package created", pkg)
}

func (pc *PackageController) loadOwnedPackage(c *gin.Context, id uint) (*models.Package, bool) {
	identity := middlewares.CurrentIdentity(c)

	var pkg models.Package
	if err := pc.DB.First(&pkg, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("package not found"))
		return nil, false
	}
	if !identity.IsAdmin() && pkg.VendorID != identity.VendorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return nil, false
	}
	return &pkg, true
}

func (pc *PackageController) UpdatePackage(c *gin.Context) {
	id, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	pkg, ok := pc.loadOwnedPackage(c, id)
	if !ok {
		return
	}

	type request struct {
		Name           *string          `json:"name"`
		Description    *string          `json:"description"`
		PricePerPerson *decimal.Decimal `json:"price_per_person"`
		MinGuests      *uint            `json:"min_guests"`
		MaxGuests      *uint            `json:"max_guests"`
		IsActive       *bool            `json:"is_active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.PricePerPerson != nil {
		if req.PricePerPerson.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price_per_person cannot be negative"))
			return
		}
		pkg.PricePerPerson = *req.PricePerPerson
	}
	if req.MinGuests != nil {
		pkg.MinGuests = *req.MinGuests
	}
	if req.MaxGuests != nil {
		pkg.MaxGuests = req.MaxGuests
	}
	if pkg.MaxGuests != nil && pkg.MinGuests > *pkg.MaxGuests {
		utils.RespondError(c, http.StatusBadRequest, errors.New("min_guests cannot exceed max_guests"))
		return
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := pc.DB.Save(pkg).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Package updated", pkg)
}

// DeletePackage refuses to remove a package referenced by any order;
// historical orders must keep resolving their catalog references.
func (pc *PackageController) DeletePackage(c *gin.Context) {
	id, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	pkg, ok := pc.loadOwnedPackage(c, id)
	if !ok {
		return
	}

	var referenced int64
	if err := pc.DB.Model(&models.Order{}).Where("package_id = ?", pkg.ID).Count(&referenced).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if referenced > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("package is referenced by existing orders"))
		return
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		var categoryIDs []uint
		if err := tx.Model(&models.PackageCategory{}).Where("package_id = ?", pkg.ID).
			Pluck("id", &categoryIDs).Error; err != nil {
			return err
		}
		if len(categoryIDs) > 0 {
			if err := tx.Where("package_category_id IN ?", categoryIDs).
				Delete(&models.PackageCategoryItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.Addon{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Package{}, pkg.ID).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Package deleted", nil)
}

// AddCategory -> new menu section inside an owned package.
func (pc *PackageController) AddCategory(c *gin.Context) {
	id, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	pkg, ok := pc.loadOwnedPackage(c, id)
	if !ok {
		return
	}

	type request struct {
		Name      string `json:"name" binding:"required"`
		Note      string `json:"note"`
		MinSelect uint   `json:"min_select"`
		MaxSelect *uint  `json:"max_select"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.MaxSelect != nil && req.MinSelect > *req.MaxSelect {
		utils.RespondError(c, http.StatusBadRequest, errors.New("min_select cannot exceed max_select"))
		return
	}

	category := models.PackageCategory{
		PackageID: pkg.ID,
		Name:      req.Name,
		Note:      req.Note,
		MinSelect: req.MinSelect,
		MaxSelect: req.MaxSelect,
		IsActive:  true,
	}
	if err := pc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// AddCategoryItem links a product into a category, optionally as a premium
// upsell with a per-guest surcharge.
func (pc *PackageController) AddCategoryItem(c *gin.Context) {
	packageID, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	categoryID, ok := paramID(c, "category_id")
	if !ok {
		return
	}
	pkg, ok := pc.loadOwnedPackage(c, packageID)
	if !ok {
		return
	}

	var category models.PackageCategory
	if err := pc.DB.First(&category, categoryID).Error; err != nil || category.PackageID != pkg.ID {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found in this package"))
		return
	}

	type request struct {
		ProductID           uint            `json:"product_id" binding:"required"`
		IsPremium           bool            `json:"is_premium"`
		ExtraPricePerPerson decimal.Decimal `json:"extra_price_per_person"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.ExtraPricePerPerson.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("extra_price_per_person cannot be negative"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, req.ProductID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	if product.VendorID != pkg.VendorID {
		utils.RespondError(c, http.StatusBadRequest, errors.New("product belongs to another vendor"))
		return
	}

	item := models.PackageCategoryItem{
		PackageCategoryID:   category.ID,
		ProductID:           product.ID,
		IsPremium:           req.IsPremium,
		ExtraPricePerPerson: req.ExtraPricePerPerson,
		IsActive:            true,
	}
	if err := pc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category item created", item)
}

// UpdateCategoryItem toggles availability or adjusts the upsell surcharge of
// a dish within a category. Existing orders keep their frozen values.
func (pc *PackageController) UpdateCategoryItem(c *gin.Context) {
	packageID, ok := paramID(c, "package_id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	pkg, ok := pc.loadOwnedPackage(c, packageID)
	if !ok {
		return
	}

	var item models.PackageCategoryItem
	if err := pc.DB.Preload("PackageCategory").First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category item not found"))
		return
	}
	if item.PackageCategory.PackageID != pkg.ID {
		utils.RespondError(c, http.StatusNotFound, errors.New("category item not found in this package"))
		return
	}

	type request struct {
		IsPremium           *bool            `json:"is_premium"`
		ExtraPricePerPerson *decimal.Decimal `json:"extra_price_per_person"`
		IsActive            *bool            `json:"is_active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.IsPremium != nil {
		item.IsPremium = *req.IsPremium
	}
	if req.ExtraPricePerPerson != nil {
		if req.ExtraPricePerPerson.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("extra_price_per_person cannot be negative"))
			return
		}
		item.ExtraPricePerPerson = *req.ExtraPricePerPerson
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := pc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category item updated", item)
}
