package router

import (
	"github.com/gin-gonic/gin"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/controllers"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	customerCtrl := controllers.NewCustomerController(db)
	orderCtrl := controllers.NewOrderController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Customer-facing reads, no auth. The fan-out actor stays empty here.
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)
	r.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetTablesByRestaurant)
	r.GET("/restaurants/:restaurant_id/available-tables", tableCtrl.GetAvailableTablesByRestaurant)
	r.POST("/orders", orderCtrl.CreateOrder)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.POST("/tables", middlewares.RequireRoles("staff"), tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", middlewares.RequireRoles("staff"), tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", middlewares.RequireRoles("staff"), tableCtrl.DeleteTable)
	auth.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetTablesByRestaurant)
	auth.GET("/restaurants/:restaurant_id/available-tables", tableCtrl.GetAvailableTablesByRestaurant)

	// RESTAURANTS
	auth.POST("/restaurants", middlewares.RequireRoles("admin"), restaurantCtrl.CreateRestaurant)
	auth.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	auth.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", middlewares.RequireRoles("staff"), customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/cancel", middlewares.RequireRoles("staff"), orderCtrl.CancelOrder)

	// WebSocket observers
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/tables", controllers.TableEventsHandler)
	}

	return r
}
