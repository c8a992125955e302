package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/middlewares"
	"github.com/smalltable/catering-app/models"
	"github.com/smalltable/catering-app/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> public list of available dishes, optionally filtered by
// vendor or category.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Where("is_available = ?", true)
	if vendor := c.Query("vendor_id"); vendor != "" {
		query = query.Where("vendor_id = ?", vendor)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// CreateProduct -> vendor adds a dish to their own kitchen.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	type request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		IsAvailable *bool  `json:"is_available"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !identity.IsVendor() {
		utils.RespondError(c, http.StatusForbidden, errors.New("a vendor profile is required"))
		return
	}

	product := models.Product{
		VendorID:    identity.VendorID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	if !identity.IsAdmin() && product.VendorID != identity.VendorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		IsAvailable *bool   `json:"is_available"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct rejects removal while any order item references the product,
// preserving order history.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	if !identity.IsAdmin() && product.VendorID != identity.VendorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var referenced int64
	if err := pc.DB.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).Count(&referenced).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if referenced > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("product is referenced by existing orders"))
		return
	}

	if err := pc.DB.Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}
