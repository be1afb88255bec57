package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

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

	products := []models.Product{
		{Name: "Mug", Price: 3.99, Stock: 50},
		{Name: "Notebook", Price: 2.49, Stock: 20},
		{Name: "Poster", Price: 12.00, Stock: 5},
	}
	require.NoError(t, db.Create(&products).Error)
	return db
}

func TestAddItemAccumulates(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 2)
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, "user-1", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, uint(1), c.Items[0].ProductID)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItemDistinctProducts(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", 2, 1)
	require.NoError(t, err)

	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.AddItem(ctx, "user-1", 1, -4)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Nothing was created, not even the cart.
	var count int64
	require.NoError(t, svc.db.Model(&models.Cart{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := NewService(newTestDB(t))
	_, err := svc.AddItem(context.Background(), "user-1", 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 1)
	require.NoError(t, err)

	// A later catalog edit must not change the line already in the cart.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", 1).Update("price", 99.99).Error)

	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3.99, c.Items[0].UnitPrice)
	assert.Equal(t, "Mug", c.Items[0].ProductName)
}

func TestSetItemQuantityReplaces(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 4)
	require.NoError(t, err)
	item, err := svc.SetItemQuantity(ctx, "user-1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestSetItemQuantityMissingLine(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 1)
	require.NoError(t, err)
	_, err = svc.SetItemQuantity(ctx, "user-1", 2, 3)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.SetItemQuantity(ctx, "user-1", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRemoveItem(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 7)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveItem(ctx, "user-1", 1))

	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	assert.ErrorIs(t, svc.RemoveItem(ctx, "user-1", 1), ErrItemNotFound)
}

func TestClearPreservesCart(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", 1, 2)
	require.NoError(t, err)
	before, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "user-1"))

	after, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, after.Items)
	assert.Equal(t, before.CartID, after.CartID)
	assert.Equal(t, before.OwnerID, after.OwnerID)
	assert.WithinDuration(t, before.CreatedAt, after.CreatedAt, time.Second)
}

func TestGetMissingCartIsEmpty(t *testing.T) {
	svc := NewService(newTestDB(t))
	c, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.CartID)
}

func TestMergeGuestCart(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "guest-1", 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "guest-1", 2, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", 1, 3)
	require.NoError(t, err)

	merged, err := svc.MergeGuestCart(ctx, "guest-1", "user-1")
	require.NoError(t, err)
	assert.True(t, merged)

	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	byProduct := map[uint]int{}
	for _, item := range c.Items {
		byProduct[item.ProductID] = item.Quantity
	}
	assert.Equal(t, 5, byProduct[1]) // accumulated 3 + 2
	assert.Equal(t, 1, byProduct[2])

	// Guest cart is gone.
	guest, err := svc.Get(ctx, "guest-1")
	require.NoError(t, err)
	assert.Zero(t, guest.CartID)
}

func TestGuestOwnedCartNeedsNoUserRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Email: "u1@example.com", PasswordHash: "x",
	}).Error)

	// Guest session IDs are cart owners too; with foreign keys enforced a
	// carts.owner_id -> users.id constraint would reject this insert.
	_, err := svc.AddItem(ctx, "guest_abc123", 1, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", 1, 1)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestMergeGuestCartEndsGuestSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.GuestUser{
		ID: "guest-1", ExpiresAt: time.Now().Add(time.Hour),
	}).Error)
	_, err := svc.AddItem(ctx, "guest-1", 1, 2)
	require.NoError(t, err)

	merged, err := svc.MergeGuestCart(ctx, "guest-1", "user-1")
	require.NoError(t, err)
	assert.True(t, merged)

	// The session must not survive the merge, or the same guest ID could
	// keep filling a fresh cart after login.
	var sessions int64
	require.NoError(t, db.Model(&models.GuestUser{}).Where("id = ?", "guest-1").Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestMergeGuestCartNothingToMerge(t *testing.T) {
	svc := NewService(newTestDB(t))
	merged, err := svc.MergeGuestCart(context.Background(), "guest-without-cart", "user-1")
	require.NoError(t, err)
	assert.False(t, merged)
}

func TestTotals(t *testing.T) {
	c := &models.Cart{Items: []models.CartItem{
		{UnitPrice: 3.99, Quantity: 2},
		{UnitPrice: 2.49, Quantity: 3},
	}}
	totals, err := Totals(c, 0.10, 0)
	require.NoError(t, err)
	assert.Equal(t, 15.45, totals.ItemsPrice)
	assert.Equal(t, 1.55, totals.TaxPrice)
	assert.Equal(t, 17.00, totals.TotalPrice)
}
