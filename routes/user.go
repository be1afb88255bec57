package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cart"
	"github.com/shoplane-dev/storefront-api/config"
	cartControllers "github.com/shoplane-dev/storefront-api/controllers/cart"
	userControllers "github.com/shoplane-dev/storefront-api/controllers/user"
	"github.com/shoplane-dev/storefront-api/middleware"
	"github.com/shoplane-dev/storefront-api/rbac"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a valid JWT
// and at least the client role.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.Auth.JWTSecret), rbac.RequireRole(rbac.RoleClient))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		cartGroup.Use(rbac.RequirePermission(rbac.PermManageCart))
		{
			cartGroup.GET("", cartControllers.GetUserCart(carts, cfg.Pricing.TaxRate))          // GET /user/cart
			cartGroup.POST("", cartControllers.AddCartItem(carts))                              // POST /user/cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem(carts))                // PUT /user/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(carts))             // DELETE /user/cart/:product_id
			cartGroup.DELETE("", cartControllers.ClearUserCart(carts))                          // DELETE /user/cart
		}
	}
}
