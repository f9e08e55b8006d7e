package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	config "github.com/polito-se2-21-r03/spg/configs"
	"github.com/polito-se2-21-r03/spg/internal/auth"
	"github.com/polito-se2-21-r03/spg/internal/db"
	"github.com/polito-se2-21-r03/spg/internal/handlers"
	"github.com/polito-se2-21-r03/spg/internal/metrics"
	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/notifier"
	"github.com/polito-se2-21-r03/spg/internal/repository"
	"github.com/polito-se2-21-r03/spg/internal/service"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: error loading env: %v", err)
	}

	serverCfg := config.LoadServerConfig()

	gdb, err := db.Connect(config.LoadDBConfig())
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}
	log.Println("Database connected and migrated successfully")

	users := repository.NewGormUserRepository(gdb)
	wallets := repository.NewGormWalletRepository(gdb)
	products := repository.NewGormProductRepository(gdb)
	orders := repository.NewGormOrderRepository(gdb)

	orderSvc := service.NewOrderService(orders)
	productSvc := service.NewProductService(products)
	reminder := notifier.NewEmailNotifier(config.LoadEmailConfig())

	authn, err := auth.New(context.Background(), config.LoadOIDCConfig(), users)
	if err != nil {
		log.Fatalf("OIDC provider init error: %v", err)
	}

	farmerHandler := handlers.NewFarmerHandler(users, products, orderSvc, productSvc)
	orderHandler := handlers.NewOrderHandler(orders, users, orderSvc, reminder)
	productHandler := handlers.NewProductHandler(products, users)
	userHandler := handlers.NewUserHandler(users, wallets)

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(serverCfg.SessionSecret))
	r.Use(sessions.Sessions("spgsess", store))

	serverMetrics := metrics.New("api")
	r.Use(serverMetrics.Middleware())

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/auth/login", authn.Login)
	r.GET("/auth/callback", authn.Callback)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(authn.RequireAuth())
	{
		api.GET("/product", productHandler.GetAllProducts)
		api.POST("/product", productHandler.CreateProduct)

		api.GET("/order", orderHandler.GetAllOrders)
		api.POST("/order", orderHandler.CreateOrder)
		api.GET("/order/client/:clientId", orderHandler.GetOrdersByClient)
		api.GET("/order/:orderId", orderHandler.GetOrder)
		api.PUT("/order/:orderId", orderHandler.UpdateOrder)
		api.DELETE("/order/:orderId", orderHandler.DestroyOrder)
		api.POST("/order/:orderId/reminder", orderHandler.SendOrderReminder)

		api.GET("/user", userHandler.GetUsersByRole)
		api.GET("/client/:clientId/wallet", userHandler.GetClientWallet)

		api.GET("/farmer", farmerHandler.GetAllFarmers)

		farmer := api.Group("/farmer/:farmerId")
		farmer.Use(authn.RequireRole(models.RoleFarmer, models.RoleManager))
		{
			farmer.GET("/product", farmerHandler.GetFarmerProducts)
			farmer.PUT("/product/:productId", farmerHandler.UpdateProduct)
			farmer.GET("/order", farmerHandler.GetFarmerOrders)
			farmer.GET("/order/:orderId", farmerHandler.GetFarmerOrder)
			farmer.POST("/order/:orderId/confirm", farmerHandler.ConfirmOrderProducts)
			farmer.POST("/order/:orderId/status", farmerHandler.UpdateOrderProductStatus)
		}
	}

	if err := r.Run(serverCfg.Addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
