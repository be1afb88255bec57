package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	"github.com/shoplane-dev/storefront-api/cart"
	"github.com/shoplane-dev/storefront-api/config"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service, store *cache.Cache, cfg *config.Config) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, carts, cfg)

	// Public catalog + guest carts
	SetupPublicRoutes(r, db, carts, store, cfg)

	// User routes (JWT-protected, client role and up)
	SetupUserRoutes(r, db, carts, cfg)

	// Order routes
	SetupOrderRoutes(r, db, cfg)

	// Admin routes (JWT + role/permission gated)
	SetupAdminRoutes(r, db, carts, store, cfg)
}
