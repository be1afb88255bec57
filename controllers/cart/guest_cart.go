package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cart"
	"github.com/shoplane-dev/storefront-api/models"
)

// resolveGuest validates the guest_id query parameter against live guest
// sessions. Expired or unknown guests get no cart.
func resolveGuest(c *gin.Context, db *gorm.DB) (string, bool) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
		return "", false
	}

	var guest models.GuestUser
	if err := db.Where("id = ?", guestID).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown guest session"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate guest"})
		}
		return "", false
	}
	if time.Now().After(guest.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Guest session expired"})
		return "", false
	}
	return guestID, true
}

// GET /guest/cart
func GetGuestCart(db *gorm.DB, carts *cart.Service, taxRate float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := resolveGuest(c, db)
		if !ok {
			return
		}

		guestCart, err := carts.Get(c.Request.Context(), guestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}
		totals, err := cart.Totals(guestCart, taxRate, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": guestCart.Items, "totals": totals})
	}
}

// POST /guest/cart
func AddGuestCartItem(db *gorm.DB, carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := resolveGuest(c, db)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := carts.AddItem(c.Request.Context(), guestID, input.ProductID, input.Quantity)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /guest/cart/:product_id
func DeleteGuestCartItem(db *gorm.DB, carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := resolveGuest(c, db)
		if !ok {
			return
		}

		productID, err := parseProductID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		if err := carts.RemoveItem(c.Request.Context(), guestID, productID); err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /guest/cart
func ClearGuestCart(db *gorm.DB, carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := resolveGuest(c, db)
		if !ok {
			return
		}
		if err := carts.Clear(c.Request.Context(), guestID); err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
