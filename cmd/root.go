package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API - products, carts, orders and accounts",
	Long: `Storefront API is a REST backend for an e-commerce storefront:
product catalog, per-user and guest carts, checkout with snapshot pricing,
and role-based access control for admin surfaces.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
