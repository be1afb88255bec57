package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/database"
	"github.com/shoplane-dev/storefront-api/metrics"
	"github.com/shoplane-dev/storefront-api/models"
	"github.com/shoplane-dev/storefront-api/pricing"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	DeliveryOptionID uint `json:"delivery_option_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Errors --------

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrDeliveryOptionNotFound = errors.New("delivery option not found")
)

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// byIDOrRef scopes the query to the numeric primary key or, when the key is
// not numeric, to order_ref. Postgres rejects comparing a non-numeric string
// against the integer id column, so the two never share one WHERE clause.
func byIDOrRef(tx *gorm.DB, key string) *gorm.DB {
	if _, err := strconv.ParseUint(key, 10, 64); err == nil {
		return tx.Where("id = ?", key)
	}
	return tx.Where("order_ref = ?", key)
}

// -------- Core Logic --------

// PlaceOrder turns the user's cart into an order inside one transaction:
// product rows are locked, stock is verified and deducted, name and price
// are snapshotted into order items as of this moment, totals are aggregated
// with the configured tax rate and the chosen delivery option, and the cart
// is emptied (the cart row itself stays).
func PlaceOrder(db *gorm.DB, taxRate float64, userID string, req PlaceOrderRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var userCart models.Cart
		if err := database.LockForUpdate(tx).Preload("Items").
			Where("owner_id = ?", userID).First(&userCart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(userCart.Items) == 0 {
			return ErrEmptyCart
		}

		var delivery models.DeliveryOption
		if err := tx.First(&delivery, "id = ?", req.DeliveryOptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeliveryOptionNotFound
			}
			return err
		}

		var lines []pricing.Line
		var orderItems []models.OrderItem

		for _, item := range userCart.Items {
			var product models.Product
			if err := database.LockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			if product.Stock < item.Quantity {
				return ErrInsufficientStock
			}

			// Deduct stock under the row lock.
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			// Snapshot name and price as of order creation.
			lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: item.Quantity})
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
			})
		}

		totals, err := pricing.Aggregate(lines, taxRate, delivery.Price)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:        userID,
			OrderRef:      generateOrderRef(),
			Items:         orderItems,
			ItemsPrice:    totals.ItemsPrice,
			TaxPrice:      totals.TaxPrice,
			ShippingPrice: totals.ShippingPrice,
			TotalPrice:    totals.TotalPrice,
			Status:        models.OrderStatusPending,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Empty the cart, keep the cart row.
		return tx.Where("cart_id = ?", userCart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus applies a status transition, restoring stock when an order
// is cancelled before shipping.
func UpdateStatus(db *gorm.DB, orderID string, next models.OrderStatus) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := byIDOrRef(database.LockForUpdate(tx).Preload("Items"), orderID).
			First(&order).Error; err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			return models.ErrInvalidTransition
		}

		if next == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		order.Status = next
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /orders/place (user)
func PlaceOrderHandler(db *gorm.DB, taxRate float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, taxRate, userIDVal.(string), req)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, ErrDeliveryOptionNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		metrics.OrdersPlaced.Inc()
		broadcastOrderUpdate(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/mine (user)
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal.(string)).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID — accepts numeric id or order_ref.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := byIDOrRef(db.Preload("Items"), id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:orderID/status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := UpdateStatus(db, orderID, newStatus)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case errors.Is(err, models.ErrInvalidTransition):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			}
			return
		}

		broadcastOrderUpdate(*order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// DELETE /orders/:orderID (admin)
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := byIDOrRef(tx, orderID).First(&order).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
