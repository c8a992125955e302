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

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// GetVendorReviews -> public reviews of one vendor.
func (rc *ReviewController) GetVendorReviews(c *gin.Context) {
	vendorID, ok := paramID(c, "vendor_id")
	if !ok {
		return
	}

	var reviews []models.Review
	if err := rc.DB.Where("vendor_id = ? AND is_public = ?", vendorID, true).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reviews", reviews)
}

// CreateReview lets the customer who placed an order review its vendor.
// One review per order; the vendor is derived from the order.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)

	type request struct {
		OrderID  uint   `json:"order_id" binding:"required"`
		Rating   uint   `json:"rating" binding:"required"`
		Title    string `json:"title"`
		Comment  string `json:"comment"`
		IsPublic *bool  `json:"is_public"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}

	var order models.Order
	if err := rc.DB.First(&order, req.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	if order.UserID != identity.UserID && !identity.IsAdmin() {
		utils.RespondError(c, http.StatusForbidden, errors.New("only the order's customer may review it"))
		return
	}

	var existing models.Review
	if err := rc.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("this order already has a review"))
		return
	}

	review := models.Review{
		UserID:   order.UserID,
		VendorID: order.VendorID,
		OrderID:  order.ID,
		Rating:   req.Rating,
		Title:    req.Title,
		Comment:  req.Comment,
		IsPublic: true,
	}
	if req.IsPublic != nil {
		review.IsPublic = *req.IsPublic
	}

	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Review created: order=%d vendor=%d rating=%d", review.OrderID, review.VendorID, review.Rating)
	utils.RespondJSON(c, http.StatusCreated, "Review created", review)
}

// UpdateReview edits the caller's own review.
func (rc *ReviewController) UpdateReview(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, ok := paramID(c, "review_id")
	if !ok {
		return
	}

	var review models.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("review not found"))
		return
	}
	if review.UserID != identity.UserID && !identity.IsAdmin() {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Rating   *uint   `json:"rating"`
		Title    *string `json:"title"`
		Comment  *string `json:"comment"`
		IsPublic *bool   `json:"is_public"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
			return
		}
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.IsPublic != nil {
		review.IsPublic = *req.IsPublic
	}

	if err := rc.DB.Save(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review updated", review)
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	id, ok := paramID(c, "review_id")
	if !ok {
		return
	}

	var review models.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("review not found"))
		return
	}
	if review.UserID != identity.UserID && !identity.IsAdmin() {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := rc.DB.Delete(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review deleted", nil)
}
