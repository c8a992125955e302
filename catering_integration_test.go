package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/models"
	"github.com/smalltable/catering-app/router"
	"github.com/smalltable/catering-app/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

func request(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body := bytes.NewBuffer(nil)
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func idOf(t *testing.T, w *httptest.ResponseRecorder) uint {
	t.Helper()
	raw, ok := dataOf(t, w)["id"].(float64)
	require.True(t, ok, "response has no numeric id: %s", w.Body.String())
	return uint(raw)
}

// Walks the whole marketplace flow end to end: vendor onboarding and
// approval, catalog building, a customer booking with premium dishes and
// addons, a guests-count change, and finally a review.
func TestMarketplaceFlow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	autoMigrate(db)

	r := router.SetupRouter(db)

	// Admin accounts are provisioned out of band.
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: string(hashed), Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := utils.GenerateToken(admin.ID, admin.Role)
	require.NoError(t, err)

	// Vendor signs up and logs in.
	w := request(t, r, "POST", "/register", "", map[string]interface{}{
		"name": "Vendor", "email": "vendor@example.com", "password": "vendor-secret", "role": "vendor",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = request(t, r, "POST", "/login", "", map[string]interface{}{
		"email": "vendor@example.com", "password": "vendor-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	vendorToken := dataOf(t, w)["token"].(string)

	// Profile starts inactive and needs admin approval.
	w = request(t, r, "POST", "/vendors", vendorToken, map[string]interface{}{
		"business_name": "Good Catering", "kashrut_level": "mehadrin",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	vendorID := idOf(t, w)

	w = request(t, r, "GET", "/vendors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Good Catering")

	w = request(t, r, "PATCH", fmt.Sprintf("/admin/vendors/%d/activate", vendorID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, "GET", "/vendors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Good Catering")

	// Catalog: two dishes, one package with a mains section, two addons.
	w = request(t, r, "POST", "/products", vendorToken, map[string]interface{}{
		"name": "Roast Chicken", "category": "mains",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	regularID := idOf(t, w)

	w = request(t, r, "POST", "/products", vendorToken, map[string]interface{}{
		"name": "Slow Asado", "category": "mains",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	premiumID := idOf(t, w)

	w = request(t, r, "POST", "/packages", vendorToken, map[string]interface{}{
		"name": "Classic", "price_per_person": "25.00", "min_guests": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	packageID := idOf(t, w)

	w = request(t, r, "POST", fmt.Sprintf("/packages/%d/categories", packageID), vendorToken,
		map[string]interface{}{"name": "Mains", "min_select": 1, "max_select": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	categoryID := idOf(t, w)

	w = request(t, r, "POST", fmt.Sprintf("/packages/%d/categories/%d/items", packageID, categoryID),
		vendorToken, map[string]interface{}{"product_id": regularID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, "POST", fmt.Sprintf("/packages/%d/categories/%d/items", packageID, categoryID),
		vendorToken, map[string]interface{}{
			"product_id": premiumID, "is_premium": true, "extra_price_per_person": "5.00",
		})
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, "POST", "/admin/addon-categories", adminToken,
		map[string]interface{}{"name": "Extras"})
	require.Equal(t, http.StatusCreated, w.Code)
	addonCategoryID := idOf(t, w)

	w = request(t, r, "POST", fmt.Sprintf("/packages/%d/addons", packageID), vendorToken,
		map[string]interface{}{
			"category_id": addonCategoryID, "name": "Sound System",
			"price": "50.00", "pricing_type": "fixed",
		})
	require.Equal(t, http.StatusCreated, w.Code)
	soundID := idOf(t, w)

	w = request(t, r, "POST", fmt.Sprintf("/packages/%d/addons", packageID), vendorToken,
		map[string]interface{}{
			"category_id": addonCategoryID, "name": "Lemonade",
			"price": "3.00", "pricing_type": "per_person",
		})
	require.Equal(t, http.StatusCreated, w.Code)
	lemonadeID := idOf(t, w)

	// Customer signs up and books.
	w = request(t, r, "POST", "/register", "", map[string]interface{}{
		"name": "Customer", "email": "customer@example.com", "password": "customer-secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = request(t, r, "POST", "/login", "", map[string]interface{}{
		"email": "customer@example.com", "password": "customer-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	customerToken := dataOf(t, w)["token"].(string)

	w = request(t, r, "POST", "/orders", customerToken, map[string]interface{}{
		"package_id":   packageID,
		"guests_count": 10,
		"items": []map[string]interface{}{
			{"category_id": categoryID, "product_id": regularID},
			{"category_id": categoryID, "product_id": premiumID},
		},
		"addons": []map[string]interface{}{
			{"addon_id": soundID, "quantity": 1},
			{"addon_id": lemonadeID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderData := dataOf(t, w)
	orderID := uint(orderData["id"].(float64))
	// 25*10 + 5*10 + 50 + 3*10*2
	assert.Equal(t, "410", fmt.Sprint(orderData["total_price"]))

	// Later catalog price changes must not touch the frozen booking.
	w = request(t, r, "PATCH", fmt.Sprintf("/packages/%d/addons/%d", packageID, soundID),
		vendorToken, map[string]interface{}{"price": "500.00"})
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, "GET", fmt.Sprintf("/orders/%d", orderID), customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "410", fmt.Sprint(dataOf(t, w)["total_price"]))

	// A guests change does recompute, from the frozen snapshots.
	w = request(t, r, "PATCH", fmt.Sprintf("/orders/%d", orderID), customerToken,
		map[string]interface{}{"guests_count": 20})
	require.Equal(t, http.StatusOK, w.Code)
	// 25*20 + 5*20 + 50 + 3*20*2
	assert.Equal(t, "770", fmt.Sprint(dataOf(t, w)["total_price"]))

	// Vendor sees the booking too.
	w = request(t, r, "GET", "/orders", vendorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"id":%d`, orderID))

	// And finally the customer reviews the vendor.
	w = request(t, r, "POST", "/reviews", customerToken, map[string]interface{}{
		"order_id": orderID, "rating": 5, "title": "Flawless evening",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, "GET", fmt.Sprintf("/vendors/%d/reviews", vendorID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Flawless evening")
}
