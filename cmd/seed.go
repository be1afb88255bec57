package cmd

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shoplane-dev/storefront-api/auth"
	"github.com/shoplane-dev/storefront-api/config"
	"github.com/shoplane-dev/storefront-api/database"
	"github.com/shoplane-dev/storefront-api/models"
	"github.com/shoplane-dev/storefront-api/rbac"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed delivery options and the initial superadmin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg.DB)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		if err := database.SeedDeliveryOptions(db); err != nil {
			return err
		}

		// Bootstrap superadmin from env; roles change only through the
		// role-management endpoint after that.
		email := os.Getenv("SUPERADMIN_EMAIL")
		password := os.Getenv("SUPERADMIN_PASSWORD")
		if email == "" || password == "" {
			log.Println("⚠️ SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD not set, skipping superadmin seed")
			return nil
		}

		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			log.Printf("✅ Superadmin %s already exists", email)
			return nil
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		user := models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			Name:         "Superadmin",
			Role:         rbac.RoleSuperadmin,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded superadmin %s", email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
