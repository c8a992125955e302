package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/models"
	"github.com/smalltable/catering-app/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.VendorProfile{},
		&models.Product{},
		&models.Package{},
		&models.PackageCategory{},
		&models.PackageCategoryItem{},
		&models.AddonCategory{},
		&models.Addon{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderAddon{},
		&models.Review{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, Password: string(hashed), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

// seedCatalog creates a vendor with an active package (25.00 per person), one
// category with a regular and a premium dish (+5.00), and two addons
// (fixed 50.00, per-person 3.00).
type catalog struct {
	vendorUser models.User
	vendor     models.VendorProfile
	pkg        models.Package
	category   models.PackageCategory
	regular    models.Product
	premium    models.Product
	fixedAdd   models.Addon
	perPerson  models.Addon
}

func seedCatalog(t *testing.T, db *gorm.DB) catalog {
	t.Helper()

	vendorUser := createUser(t, db, "Vendor", "vendor@example.com", models.RoleVendor)
	vendor := models.VendorProfile{UserID: vendorUser.ID, BusinessName: "Good Catering", IsActive: true}
	require.NoError(t, db.Create(&vendor).Error)

	pkg := models.Package{
		VendorID:       vendor.ID,
		Name:           "Classic",
		PricePerPerson: decimal.RequireFromString("25.00"),
		MinGuests:      1,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&pkg).Error)

	category := models.PackageCategory{PackageID: pkg.ID, Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	regular := models.Product{VendorID: vendor.ID, Name: "Roast Chicken", IsAvailable: true}
	require.NoError(t, db.Create(&regular).Error)
	premium := models.Product{VendorID: vendor.ID, Name: "Slow Asado", IsAvailable: true}
	require.NoError(t, db.Create(&premium).Error)

	require.NoError(t, db.Create(&models.PackageCategoryItem{
		PackageCategoryID: category.ID, ProductID: regular.ID, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.PackageCategoryItem{
		PackageCategoryID:   category.ID,
		ProductID:           premium.ID,
		IsPremium:           true,
		ExtraPricePerPerson: decimal.RequireFromString("5.00"),
		IsActive:            true,
	}).Error)

	addonCategory := models.AddonCategory{Name: "Extras", IsActive: true}
	require.NoError(t, db.Create(&addonCategory).Error)

	fixedAdd := models.Addon{
		PackageID: pkg.ID, CategoryID: addonCategory.ID, Name: "Sound System",
		Price: decimal.RequireFromString("50.00"), PricingType: models.PricingFixed, IsActive: true,
	}
	require.NoError(t, db.Create(&fixedAdd).Error)

	perPerson := models.Addon{
		PackageID: pkg.ID, CategoryID: addonCategory.ID, Name: "Lemonade",
		Price: decimal.RequireFromString("3.00"), PricingType: models.PricingPerPerson, IsActive: true,
	}
	require.NoError(t, db.Create(&perPerson).Error)

	return catalog{
		vendorUser: vendorUser,
		vendor:     vendor,
		pkg:        pkg,
		category:   category,
		regular:    regular,
		premium:    premium,
		fixedAdd:   fixedAdd,
		perPerson:  perPerson,
	}
}

func doRequest(t *testing.T, router *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}
