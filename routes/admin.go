package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	"github.com/shoplane-dev/storefront-api/cart"
	"github.com/shoplane-dev/storefront-api/config"
	adminController "github.com/shoplane-dev/storefront-api/controllers/admin"
	cartControllers "github.com/shoplane-dev/storefront-api/controllers/cart"
	productcontroller "github.com/shoplane-dev/storefront-api/controllers/product"
	userControllers "github.com/shoplane-dev/storefront-api/controllers/user"
	"github.com/shoplane-dev/storefront-api/middleware"
	"github.com/shoplane-dev/storefront-api/rbac"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Every route requires
// a JWT plus the admin role; finer gates use permission checks so that the
// superadmin-only surfaces stay closed to plain admins.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service, store *cache.Cache, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(cfg.Auth.JWTSecret), rbac.RequireRole(rbac.RoleAdmin))
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.GET("/users",
			rbac.RequirePermission(rbac.PermViewClients),
			userControllers.GetAllUsers(db))

		// ─────────── Role Management (superadmin) ───────────
		adminGroup.PUT("/users/:user_id/role",
			rbac.RequirePermission(rbac.PermManageAdmins),
			adminController.UpdateUserRole(db))
		adminGroup.GET("/permissions/:role",
			rbac.RequirePermission(rbac.PermManagePermissions),
			adminController.GetRolePermissions())

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		productAdmin.Use(rbac.RequirePermission(rbac.PermManageProducts))
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, store))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, store))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db, store))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		categoryAdmin.Use(rbac.RequirePermission(rbac.PermManageProducts))
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Customer Cart Inspection ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		cartMgmt.Use(rbac.RequirePermission(rbac.PermViewClients))
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(carts, cfg.Pricing.TaxRate))
		}
	}
}
