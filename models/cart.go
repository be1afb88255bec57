package models

import "time"

// Cart belongs to one owner: a user ID or a guest session ID. Guest and user
// carts share every code path; only the owner identity differs. Because guest
// owners have no users row, owner_id deliberately carries no foreign key; the
// owning user's cart is resolved by query, never by association.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	OwnerID   string     `gorm:"uniqueIndex" json:"owner_id"`                    // Enforces ONE cart per owner
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // Cascade delete items if cart is deleted
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem snapshots product name and price at add time. One row per
// (cart, product); additions accumulate quantity instead of duplicating.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"index:idx_cart_product,unique" json:"cart_id"`
	ProductID   uint      `gorm:"index:idx_cart_product,unique" json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}
