package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/auth"
	"github.com/shoplane-dev/storefront-api/cart"
	"github.com/shoplane-dev/storefront-api/config"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service, cfg *config.Config) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db, cfg.Auth))
		authGroup.POST("/login", auth.LoginHandler(db, cfg.Auth, carts))
		authGroup.POST("/guest", auth.CreateGuestUser(db, cfg.Auth))
	}
}
