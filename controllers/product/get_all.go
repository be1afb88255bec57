package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cache"
	"github.com/shoplane-dev/storefront-api/models"
)

const productListCacheKey = "products:all"

// GetProducts lists the catalog, served from the Redis cache when warm.
// Admin writes invalidate the key.
func GetProducts(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if store.Get(c.Request.Context(), productListCacheKey, &products) {
			c.JSON(http.StatusOK, products)
			return
		}

		if err := db.Preload("Categories").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		_ = store.Set(c.Request.Context(), productListCacheKey, products)
		c.JSON(http.StatusOK, products)
	}
}
