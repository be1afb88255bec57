package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/models"
)

// GET /delivery-options
func ListDeliveryOptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var options []models.DeliveryOption
		if err := db.Order("price ASC").Find(&options).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery options"})
			return
		}
		c.JSON(http.StatusOK, options)
	}
}
