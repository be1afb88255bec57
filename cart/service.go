// Package cart implements the cart merge rule: one line per product,
// additions accumulate quantity, direct updates replace it. All mutating
// operations run in a transaction holding the cart row lock, so concurrent
// writes to the same cart are serialized rather than last-write-wins.
package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/database"
	"github.com/shoplane-dev/storefront-api/models"
	"github.com/shoplane-dev/storefront-api/pricing"
)

var (
	ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")
	ErrProductNotFound = errors.New("cart: product does not exist")
	ErrItemNotFound    = errors.New("cart: item not in cart")
	ErrCartNotFound    = errors.New("cart: cart not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the owner's cart with items. Carts are created lazily on the
// first add, so a missing cart is returned as an empty, unpersisted one.
func (s *Service) Get(ctx context.Context, ownerID string) (*models.Cart, error) {
	var c models.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("owner_id = ?", ownerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AddItem merges quantity into an existing line for the product, or appends
// a new line snapshotting the product's current name and price.
func (s *Service) AddItem(ctx context.Context, ownerID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var out models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockOrCreateCart(tx, ownerID)
		if err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", c.CartID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				CartID:      c.CartID,
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    quantity,
				AddedAt:     time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			out = item
			return nil
		}
		if err != nil {
			return err
		}

		// Existing line: accumulate, never replace.
		item.Quantity += quantity
		item.AddedAt = time.Now()
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetItemQuantity replaces a line's quantity. Unlike AddItem it never
// accumulates; the line must already exist.
func (s *Service) SetItemQuantity(ctx context.Context, ownerID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var out models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCart(tx, ownerID)
		if err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND product_id = ?", c.CartID, productID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		item.Quantity = quantity
		item.AddedAt = time.Now()
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveItem deletes the product's line entirely, regardless of quantity.
func (s *Service) RemoveItem(ctx context.Context, ownerID string, productID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCart(tx, ownerID)
		if err != nil {
			return err
		}
		res := tx.Where("cart_id = ? AND product_id = ?", c.CartID, productID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

// Clear empties the cart's lines but keeps the cart row, preserving owner
// identity and creation time.
func (s *Service) Clear(ctx context.Context, ownerID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCart(tx, ownerID)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", c.CartID).Delete(&models.CartItem{}).Error
	})
}

// MergeGuestCart folds a guest cart into the user's cart at login,
// accumulating quantities for products present in both, then drops the
// guest cart and the guest session itself. Returns false if there was
// nothing to merge.
func (s *Service) MergeGuestCart(ctx context.Context, guestID, userID string) (bool, error) {
	merged := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The session ends on login either way; a live session would let the
		// same guest ID keep filling a fresh cart afterwards.
		if err := tx.Where("id = ?", guestID).Delete(&models.GuestUser{}).Error; err != nil {
			return err
		}

		var guestCart models.Cart
		err := tx.Preload("Items").Where("owner_id = ?", guestID).First(&guestCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to merge
		}
		if err != nil {
			return err
		}

		userCart, err := lockOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		for _, guestItem := range guestCart.Items {
			var userItem models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ?", userCart.CartID, guestItem.ProductID).
				First(&userItem).Error

			if err == nil {
				userItem.Quantity += guestItem.Quantity
				userItem.AddedAt = time.Now()
				if err := tx.Save(&userItem).Error; err != nil {
					return err
				}
			} else if errors.Is(err, gorm.ErrRecordNotFound) {
				newItem := models.CartItem{
					CartID:      userCart.CartID,
					ProductID:   guestItem.ProductID,
					ProductName: guestItem.ProductName,
					UnitPrice:   guestItem.UnitPrice,
					Quantity:    guestItem.Quantity,
					AddedAt:     time.Now(),
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			} else {
				return err
			}
			merged = true
		}

		// Guest cart is gone after merge.
		if err := tx.Where("cart_id = ?", guestCart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&guestCart).Error
	})
	if err != nil {
		return false, err
	}
	return merged, nil
}

// Totals prices the cart with the given tax rate and shipping cost.
func Totals(c *models.Cart, taxRate, shippingCost float64) (pricing.Totals, error) {
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return pricing.Aggregate(lines, taxRate, shippingCost)
}

// lockCart takes the cart row lock, serializing writers per cart.
func lockCart(tx *gorm.DB, ownerID string) (*models.Cart, error) {
	var c models.Cart
	err := database.LockForUpdate(tx).Where("owner_id = ?", ownerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// lockOrCreateCart is lockCart with lazy creation on first use.
func lockOrCreateCart(tx *gorm.DB, ownerID string) (*models.Cart, error) {
	c, err := lockCart(tx, ownerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}
	created := models.Cart{OwnerID: ownerID}
	if err := tx.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}
