package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/controllers"
	"github.com/smalltable/catering-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	allowOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	vendorCtrl := controllers.NewVendorController(db)
	productCtrl := controllers.NewProductController(db)
	packageCtrl := controllers.NewPackageController(db)
	addonCtrl := controllers.NewAddonController(db)
	orderCtrl := controllers.NewOrderController(db)
	reviewCtrl := controllers.NewReviewController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/vendors", vendorCtrl.GetAllVendors)
	r.GET("/vendors/:vendor_id", vendorCtrl.GetVendorByID)
	r.GET("/vendors/:vendor_id/reviews", reviewCtrl.GetVendorReviews)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:product_id", productCtrl.GetProductByID)
	r.GET("/packages", packageCtrl.GetAllPackages)
	r.GET("/packages/:package_id", packageCtrl.GetPackageByID)
	r.GET("/packages/:package_id/addons", addonCtrl.GetPackageAddons)
	r.GET("/addon-categories", addonCtrl.GetAllAddonCategories)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		auth.POST("/vendors", vendorCtrl.CreateVendorProfile)
		auth.PATCH("/vendors/:vendor_id", vendorCtrl.UpdateVendorProfile)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
		auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		auth.POST("/reviews", reviewCtrl.CreateReview)
		auth.PATCH("/reviews/:review_id", reviewCtrl.UpdateReview)
		auth.DELETE("/reviews/:review_id", reviewCtrl.DeleteReview)
	}

	// ----------------------------------------------------------------
	//                      VENDOR ROUTES
	// ----------------------------------------------------------------
	vendor := r.Group("/")
	vendor.Use(middlewares.AuthMiddleware(db), middlewares.RequireVendor())
	{
		vendor.POST("/products", productCtrl.CreateProduct)
		vendor.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		vendor.DELETE("/products/:product_id", productCtrl.DeleteProduct)

		vendor.POST("/packages", packageCtrl.CreatePackage)
		vendor.PATCH("/packages/:package_id", packageCtrl.UpdatePackage)
		vendor.DELETE("/packages/:package_id", packageCtrl.DeletePackage)
		vendor.POST("/packages/:package_id/categories", packageCtrl.AddCategory)
		vendor.POST("/packages/:package_id/categories/:category_id/items", packageCtrl.AddCategoryItem)
		vendor.PATCH("/packages/:package_id/items/:item_id", packageCtrl.UpdateCategoryItem)

		vendor.POST("/packages/:package_id/addons", addonCtrl.CreateAddon)
		vendor.PATCH("/packages/:package_id/addons/:addon_id", addonCtrl.UpdateAddon)
		vendor.DELETE("/packages/:package_id/addons/:addon_id", addonCtrl.DeleteAddon)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(db), middlewares.RequireAdmin())
	{
		admin.PATCH("/vendors/:vendor_id/activate", vendorCtrl.ActivateVendor)
		admin.POST("/addon-categories", addonCtrl.CreateAddonCategory)
	}

	return r
}
