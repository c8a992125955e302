package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/controllers"
	"github.com/smalltable/catering-app/middlewares"
	"github.com/smalltable/catering-app/models"
)

func setupPackageRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	packageCtrl := controllers.NewPackageController(db)

	router.GET("/packages", packageCtrl.GetAllPackages)
	router.GET("/packages/:package_id", packageCtrl.GetPackageByID)

	vendor := router.Group("/", middlewares.AuthMiddleware(db), middlewares.RequireVendor())
	vendor.POST("/packages", packageCtrl.CreatePackage)
	vendor.PATCH("/packages/:package_id", packageCtrl.UpdatePackage)
	vendor.DELETE("/packages/:package_id", packageCtrl.DeletePackage)
	vendor.POST("/packages/:package_id/categories", packageCtrl.AddCategory)
	vendor.POST("/packages/:package_id/categories/:category_id/items", packageCtrl.AddCategoryItem)
	return router
}

func TestVendorCreatesPackage(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	router := setupPackageRouter(db)
	token := tokenFor(t, cat.vendorUser)

	w := doRequest(t, router, "POST", "/packages", token, map[string]interface{}{
		"name":             "Festive",
		"price_per_person": "32.50",
		"min_guests":       20,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "32.5", fmt.Sprint(data["price_per_person"]))

	var pkg models.Package
	require.NoError(t, db.Where("name = ?", "Festive").First(&pkg).Error)
	assert.Equal(t, cat.vendor.ID, pkg.VendorID)
	assert.True(t, pkg.IsActive)
}

func TestCreatePackageRejectsCustomers(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	customer := createUser(t, db, "Customer", "customer@example.com", models.RoleCustomer)
	router := setupPackageRouter(db)

	w := doRequest(t, router, "POST", "/packages", tokenFor(t, customer), map[string]interface{}{
		"name":             "Not Mine",
		"price_per_person": "10.00",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreatePackageRejectsBadGuestBounds(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	router := setupPackageRouter(db)

	w := doRequest(t, router, "POST", "/packages", tokenFor(t, cat.vendorUser), map[string]interface{}{
		"name":             "Broken",
		"price_per_person": "10.00",
		"min_guests":       50,
		"max_guests":       20,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCategoryAndItem(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	router := setupPackageRouter(db)
	token := tokenFor(t, cat.vendorUser)

	w := doRequest(t, router, "POST", fmt.Sprintf("/packages/%d/categories", cat.pkg.ID), token,
		map[string]interface{}{"name": "Salads", "min_select": 1, "max_select": 3})
	assert.Equal(t, http.StatusCreated, w.Code)
	categoryID := uint(decodeData(t, w)["id"].(float64))

	w = doRequest(t, router, "POST",
		fmt.Sprintf("/packages/%d/categories/%d/items", cat.pkg.ID, categoryID), token,
		map[string]interface{}{
			"product_id":             cat.premium.ID,
			"is_premium":             true,
			"extra_price_per_person": "2.50",
		})
	assert.Equal(t, http.StatusCreated, w.Code)

	var item models.PackageCategoryItem
	require.NoError(t, db.Where("package_category_id = ?", categoryID).First(&item).Error)
	assert.True(t, item.IsPremium)
	assert.True(t, item.ExtraPricePerPerson.Equal(decimal.RequireFromString("2.50")))
}

func TestAddCategoryItemRejectsForeignProduct(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	router := setupPackageRouter(db)

	otherVendorUser := createUser(t, db, "Other", "other@example.com", models.RoleVendor)
	otherProfile := models.VendorProfile{UserID: otherVendorUser.ID, BusinessName: "Other Catering", IsActive: true}
	require.NoError(t, db.Create(&otherProfile).Error)
	foreign := models.Product{VendorID: otherProfile.ID, Name: "Foreign Dish", IsAvailable: true}
	require.NoError(t, db.Create(&foreign).Error)

	w := doRequest(t, router, "POST",
		fmt.Sprintf("/packages/%d/categories/%d/items", cat.pkg.ID, cat.category.ID),
		tokenFor(t, cat.vendorUser),
		map[string]interface{}{"product_id": foreign.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePackageProtectedByOrders(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	customer := createUser(t, db, "Customer", "customer@example.com", models.RoleCustomer)
	router := setupPackageRouter(db)
	token := tokenFor(t, cat.vendorUser)

	order := models.Order{
		Reference:   "ORD-protect-1",
		UserID:      customer.ID,
		VendorID:    cat.vendor.ID,
		PackageID:   cat.pkg.ID,
		GuestsCount: 10,
		TotalPrice:  decimal.RequireFromString("250.00"),
		Status:      models.OrderStatusNew,
	}
	require.NoError(t, db.Create(&order).Error)

	w := doRequest(t, router, "DELETE", fmt.Sprintf("/packages/%d", cat.pkg.ID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Package{}).Where("id = ?", cat.pkg.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteUnreferencedPackageCascades(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	router := setupPackageRouter(db)

	w := doRequest(t, router, "DELETE", fmt.Sprintf("/packages/%d", cat.pkg.ID),
		tokenFor(t, cat.vendorUser), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var categories, items, addons int64
	db.Model(&models.PackageCategory{}).Where("package_id = ?", cat.pkg.ID).Count(&categories)
	db.Model(&models.PackageCategoryItem{}).Where("package_category_id = ?", cat.category.ID).Count(&items)
	db.Model(&models.Addon{}).Where("package_id = ?", cat.pkg.ID).Count(&addons)
	assert.Zero(t, categories)
	assert.Zero(t, items)
	assert.Zero(t, addons)
}

func TestPublicPackageListHidesInactive(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	router := setupPackageRouter(db)

	hidden := models.Package{
		VendorID:       cat.vendor.ID,
		Name:           "Retired",
		PricePerPerson: decimal.RequireFromString("15.00"),
		MinGuests:      1,
		IsActive:       false,
	}
	require.NoError(t, db.Create(&hidden).Error)

	w := doRequest(t, router, "GET", "/packages", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Classic")
	assert.NotContains(t, w.Body.String(), "Retired")
}
