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

type VendorController struct {
	DB *gorm.DB
}

func NewVendorController(db *gorm.DB) *VendorController {
	return &VendorController{DB: db}
}

// GetAllVendors -> public list of active vendors
func (vc *VendorController) GetAllVendors(c *gin.Context) {
	var vendors []models.VendorProfile
	if err := vc.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&vendors).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of vendors", vendors)
}

func (vc *VendorController) GetVendorByID(c *gin.Context) {
	id, ok := paramID(c, "vendor_id")
	if !ok {
		return
	}

	var vendor models.VendorProfile
	if err := vc.DB.First(&vendor, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("vendor not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Vendor detail", vendor)
}

// CreateVendorProfile creates the caller's vendor profile. The profile stays
// inactive until an admin approves it.
func (vc *VendorController) CreateVendorProfile(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	type request struct {
		BusinessName string `json:"business_name" binding:"required"`
		Description  string `json:"description"`
		KashrutLevel string `json:"kashrut_level"`
		Address      string `json:"address"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.VendorProfile
	if err := vc.DB.Where("user_id = ?", identity.UserID).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("vendor profile already exists"))
		return
	}

	profile := models.VendorProfile{
		UserID:       identity.UserID,
		BusinessName: req.BusinessName,
		Description:  req.Description,
		KashrutLevel: req.KashrutLevel,
		Address:      req.Address,
		IsActive:     false,
	}
	if err := vc.DB.Create(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Vendor profile created: %s (user=%d)", profile.BusinessName, profile.UserID)
	utils.RespondJSON(c, http.StatusCreated, "Vendor profile created", profile)
}

// UpdateVendorProfile edits the caller's own profile; admins may edit any.
func (vc *VendorController) UpdateVendorProfile(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, ok := paramID(c, "vendor_id")
	if !ok {
		return
	}

	var profile models.VendorProfile
	if err := vc.DB.First(&profile, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("vendor not found"))
		return
	}
	if !identity.IsAdmin() && profile.UserID != identity.UserID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		BusinessName *string `json:"business_name"`
		Description  *string `json:"description"`
		KashrutLevel *string `json:"kashrut_level"`
		Address      *string `json:"address"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.BusinessName != nil {
		profile.BusinessName = *req.BusinessName
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.KashrutLevel != nil {
		profile.KashrutLevel = *req.KashrutLevel
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}

	if err := vc.DB.Save(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Vendor profile updated", profile)
}

// ActivateVendor -> admin approval toggle
func (vc *VendorController) ActivateVendor(c *gin.Context) {
	id, ok := paramID(c, "vendor_id")
	if !ok {
		return
	}

	type request struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var profile models.VendorProfile
	if err := vc.DB.First(&profile, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("vendor not found"))
		return
	}

	profile.IsActive = *req.IsActive
	if err := vc.DB.Save(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Vendor %d active=%v", profile.ID, profile.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Vendor updated", profile)
}
