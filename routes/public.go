package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	"github.com/shoplane-dev/storefront-api/cart"
	"github.com/shoplane-dev/storefront-api/config"
	cartControllers "github.com/shoplane-dev/storefront-api/controllers/cart"
	orderControllers "github.com/shoplane-dev/storefront-api/controllers/order"
	productcontroller "github.com/shoplane-dev/storefront-api/controllers/product"
	"github.com/shoplane-dev/storefront-api/metrics"
)

// SetupPublicRoutes registers unauthenticated endpoints: catalog browsing,
// guest carts (keyed by guest session), delivery options and ops endpoints.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service, store *cache.Cache, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	r.GET("/products", productcontroller.GetProducts(db, store))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategories(db))
	r.GET("/delivery-options", orderControllers.ListDeliveryOptions(db))

	guestCart := r.Group("/guest/cart")
	{
		guestCart.GET("", cartControllers.GetGuestCart(db, carts, cfg.Pricing.TaxRate))
		guestCart.POST("", cartControllers.AddGuestCartItem(db, carts))
		guestCart.DELETE("/:product_id", cartControllers.DeleteGuestCartItem(db, carts))
		guestCart.DELETE("", cartControllers.ClearGuestCart(db, carts))
	}
}
