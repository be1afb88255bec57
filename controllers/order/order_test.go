package orderControllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/cart"
	"github.com/shoplane-dev/storefront-api/database"
	"github.com/shoplane-dev/storefront-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Foreign keys on, matching the production dialect's enforcement.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Email: "u1@example.com", PasswordHash: "x",
	}).Error)

	products := []models.Product{
		{Name: "Mug", Price: 3.99, Stock: 10},
		{Name: "Notebook", Price: 2.49, Stock: 10},
	}
	require.NoError(t, db.Create(&products).Error)
	require.NoError(t, db.Create(&models.DeliveryOption{
		Name: "pickup", Price: 0, EstimatedDaysMin: 0, EstimatedDaysMax: 1,
	}).Error)
	require.NoError(t, db.Create(&models.DeliveryOption{
		Name: "express", Price: 14.99, EstimatedDaysMin: 1, EstimatedDaysMax: 2,
	}).Error)
	return db
}

func fillCart(t *testing.T, db *gorm.DB, ownerID string) {
	t.Helper()
	carts := cart.NewService(db)
	ctx := context.Background()
	_, err := carts.AddItem(ctx, ownerID, 1, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, ownerID, 2, 3)
	require.NoError(t, err)
}

func TestPlaceOrderTotals(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")

	order, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	require.NoError(t, err)

	assert.Equal(t, 15.45, order.ItemsPrice)
	assert.Equal(t, 1.55, order.TaxPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)
	assert.Equal(t, 17.00, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderRef)
	assert.Len(t, order.Items, 2)
}

func TestPlaceOrderWithShipping(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")

	order, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 2})
	require.NoError(t, err)
	assert.Equal(t, 14.99, order.ShippingPrice)
	assert.Equal(t, 31.99, order.TotalPrice) // 15.45 + 1.55 + 14.99
}

func TestPlaceOrderDeductsStockAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")

	_, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	require.NoError(t, err)

	var mug models.Product
	require.NoError(t, db.First(&mug, 1).Error)
	assert.Equal(t, 8, mug.Stock)

	// Cart is emptied, not deleted.
	carts := cart.NewService(db)
	c, err := carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.NotZero(t, c.CartID)
}

func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")

	order, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	require.NoError(t, err)

	// A later catalog edit must not touch the stored order.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", 1).Update("price", 99.99).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, order.ID).Error)
	for _, item := range reloaded.Items {
		if item.ProductID == 1 {
			assert.Equal(t, 3.99, item.UnitPrice)
			assert.Equal(t, "Mug", item.ProductName)
		}
	}
	assert.Equal(t, 17.00, reloaded.TotalPrice)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	_, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	carts := cart.NewService(db)
	_, err := carts.AddItem(context.Background(), "user-1", 1, 25)
	require.NoError(t, err)

	_, err = PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Rolled back: stock untouched, cart intact.
	var mug models.Product
	require.NoError(t, db.First(&mug, 1).Error)
	assert.Equal(t, 10, mug.Stock)

	c, err := carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestPlaceOrderUnknownDeliveryOption(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")
	_, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 99})
	assert.ErrorIs(t, err, ErrDeliveryOptionNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")
	order, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	require.NoError(t, err)
	id := fmt.Sprint(order.ID)

	_, err = UpdateStatus(db, id, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = UpdateStatus(db, id, models.OrderStatusProcessing)
	require.NoError(t, err)
	_, err = UpdateStatus(db, id, models.OrderStatusShipped)
	require.NoError(t, err)
	updated, err := UpdateStatus(db, id, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// Delivered is terminal.
	_, err = UpdateStatus(db, id, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestUpdateStatusByOrderRef(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")
	order, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	require.NoError(t, err)

	// The ref is non-numeric; lookup must branch to order_ref instead of
	// comparing it against the integer id column.
	updated, err := UpdateStatus(db, order.OrderRef, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	assert.Equal(t, order.ID, updated.ID)
}

func TestDeleteMissingOrderIs404(t *testing.T) {
	db := newTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/orders/:orderID", DeleteOrderHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/orders/999", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	fillCart(t, db, "user-1")
	order, err := PlaceOrder(db, 0.10, "user-1", PlaceOrderRequest{DeliveryOptionID: 1})
	require.NoError(t, err)

	var mug models.Product
	require.NoError(t, db.First(&mug, 1).Error)
	require.Equal(t, 8, mug.Stock)

	_, err = UpdateStatus(db, fmt.Sprint(order.ID), models.OrderStatusCancelled)
	require.NoError(t, err)

	require.NoError(t, db.First(&mug, 1).Error)
	assert.Equal(t, 10, mug.Stock)
}
