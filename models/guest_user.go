package models

import "time"

// GuestUser is an anonymous session. Its ID doubles as the cart owner ID
// until the guest logs in and the cart is merged.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
