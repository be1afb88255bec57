// Package database owns the gorm connection and shared query helpers.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shoplane-dev/storefront-api/config"
	"github.com/shoplane-dev/storefront-api/models"
)

// Open connects to Postgres using either a full DSN or discrete settings.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := cfg.URL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate runs AutoMigrate for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryOption{},
	)
}

// LockForUpdate adds a SELECT ... FOR UPDATE clause where the dialect
// supports it. SQLite (used in tests) serializes writers on its own and
// rejects the clause, so it is skipped there.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// SeedDeliveryOptions inserts the default shipping methods if missing.
func SeedDeliveryOptions(db *gorm.DB) error {
	options := []models.DeliveryOption{
		{Name: "standard", Price: 4.99, EstimatedDaysMin: 3, EstimatedDaysMax: 7},
		{Name: "express", Price: 14.99, EstimatedDaysMin: 1, EstimatedDaysMax: 2},
		{Name: "pickup", Price: 0, EstimatedDaysMin: 0, EstimatedDaysMax: 1},
	}
	for _, opt := range options {
		if err := db.Where("name = ?", opt.Name).FirstOrCreate(&opt).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d delivery options", len(options))
	return nil
}
