package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/config"
	orderControllers "github.com/shoplane-dev/storefront-api/controllers/order"
	"github.com/shoplane-dev/storefront-api/middleware"
	"github.com/shoplane-dev/storefront-api/rbac"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// websocket endpoint for real-time order updates
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(cfg.Auth.JWTSecret))
	{
		// Create a new order from the caller's cart
		orders.POST("/place",
			rbac.RequirePermission(rbac.PermPlaceOrders),
			orderControllers.PlaceOrderHandler(db, cfg.Pricing.TaxRate))

		// Fetch the caller's own orders
		orders.GET("/mine",
			rbac.RequirePermission(rbac.PermViewOwnOrders),
			orderControllers.GetUserOrdersHandler(db))

		// Fetch all orders (admin)
		orders.GET("",
			rbac.RequirePermission(rbac.PermViewAllOrders),
			orderControllers.GetAllOrdersHandler(db))

		// Fetch a single order by ID or order_ref (admin)
		orders.GET("/:orderID",
			rbac.RequirePermission(rbac.PermViewAllOrders),
			orderControllers.GetOrderByIDHandler(db))

		// Update order status (e.g. shipped, cancelled)
		orders.PUT("/:orderID/status",
			rbac.RequirePermission(rbac.PermUpdateOrderStatus),
			orderControllers.UpdateOrderStatusHandler(db))

		// Delete an order (superadmin only)
		orders.DELETE("/:orderID",
			rbac.RequireRole(rbac.RoleSuperadmin),
			orderControllers.DeleteOrderHandler(db))
	}
}
