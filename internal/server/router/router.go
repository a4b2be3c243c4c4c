package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/server/handlers"
	"github.com/bwc/pos/internal/server/middleware"
)

// Handlers groups the HTTP adapters mounted under /api.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Branch    *handlers.BranchHandler
	Catalog   *handlers.CatalogHandler
	User      *handlers.UserHandler
	Inventory *handlers.InventoryHandler
	Sale      *handlers.SaleHandler
	Purchase  *handlers.PurchaseHandler
	Dashboard *handlers.DashboardHandler
}

var (
	admin        = middleware.RequireRoles(models.RoleAdmin)
	adminSeller  = middleware.RequireRoles(models.RoleAdmin, models.RoleSeller)
	anyStaffRole = middleware.RequireRoles(models.RoleAdmin, models.RoleSeller, models.RoleWarehouse)
)

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, parser middleware.TokenParser, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signin", h.Auth.Signin)
	authGroup.POST("/signup", h.Auth.Signup)

	secured := api.Group("")
	secured.Use(middleware.Authenticate(parser, logger))

	branches := secured.Group("/branches")
	branches.GET("", adminSeller, h.Branch.List)
	branches.GET("/:id", adminSeller, h.Branch.Get)
	branches.POST("", admin, h.Branch.Create)
	branches.PUT("/:id", admin, h.Branch.Update)
	branches.DELETE("/:id", admin, h.Branch.Delete)

	secured.GET("/brands", adminSeller, h.Catalog.ListBrands)
	secured.POST("/brands", admin, h.Catalog.CreateBrand)
	secured.GET("/categories", adminSeller, h.Catalog.ListCategories)
	secured.POST("/categories", admin, h.Catalog.CreateCategory)
	secured.GET("/sizes", anyStaffRole, h.Catalog.ListSizes)
	secured.GET("/sizes/:id", admin, h.Catalog.GetSize)
	secured.POST("/sizes", admin, h.Catalog.CreateSize)

	products := secured.Group("/products")
	products.GET("", adminSeller, h.Catalog.ListProducts)
	products.GET("/:id", adminSeller, h.Catalog.GetProduct)
	products.POST("", admin, h.Catalog.CreateProduct)
	products.PUT("/:id", admin, h.Catalog.UpdateProduct)
	products.DELETE("/:id", admin, h.Catalog.DeleteProduct)

	users := secured.Group("/users", admin)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.POST("", h.User.Create)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	inventory := secured.Group("/inventory")
	inventory.GET("/stock", adminSeller, h.Inventory.Stock)
	inventory.GET("/stock/branch/:branchId", adminSeller, h.Inventory.StockByBranch)
	inventory.GET("/stock/product/:productId", adminSeller, h.Inventory.StockByProduct)
	inventory.GET("/movements", anyStaffRole, h.Inventory.Movements)
	inventory.POST("/movements", admin, h.Inventory.RecordMovement)
	inventory.POST("/transfers", admin, h.Inventory.Transfer)

	sales := secured.Group("/sales")
	sales.GET("", adminSeller, h.Sale.List)
	sales.GET("/:id", adminSeller, h.Sale.Get)
	sales.POST("", adminSeller, h.Sale.Create)
	sales.DELETE("/:id", admin, h.Sale.Delete)
	secured.GET("/customers", adminSeller, h.Sale.ListCustomers)

	purchases := secured.Group("/purchases", admin)
	purchases.GET("", h.Purchase.List)
	purchases.GET("/:id", h.Purchase.Get)
	purchases.POST("", h.Purchase.Create)
	purchases.DELETE("/:id", h.Purchase.Delete)
	secured.GET("/suppliers", admin, h.Purchase.ListSuppliers)

	secured.GET("/dashboard/stats", anyStaffRole, h.Dashboard.Stats)

	logger.Info("router initialized", zap.Int("routes", len(r.Routes())))

	return r
}
