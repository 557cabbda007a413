package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shariarfaisal/snapshop-backend/internal/handler"
	"github.com/shariarfaisal/snapshop-backend/internal/mailer"
	"github.com/shariarfaisal/snapshop-backend/internal/middleware"
	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/internal/repository"
	"github.com/shariarfaisal/snapshop-backend/internal/service"
	"github.com/shariarfaisal/snapshop-backend/internal/ws"
	"github.com/shariarfaisal/snapshop-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Category{},
		&model.Product{},
		&model.Variant{},
		&model.Media{},
		&model.ProductAttribute{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)

	smtpMailer := mailer.NewSMTPMailer()

	authService := service.NewAuthService(userRepo)
	clientAuthService := service.NewClientAuthService(customerRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, storeRepo)
	customerService := service.NewCustomerService(customerRepo, storeRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, storeRepo, smtpMailer, wsHub)
	analyticsService := service.NewAnalyticsService(analyticsRepo, storeRepo)

	authHandler := handler.NewAuthHandler(authService)
	storeHandler := handler.NewStoreHandler(storeRepo)
	productHandler := handler.NewProductHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(customerService)
	orderHandler := handler.NewOrderHandler(orderService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	uploadHandler := handler.NewUploadHandler("./uploads")
	clientHandler := handler.NewClientHandler(clientAuthService, catalogService, orderService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "SnapShop API v1.0",
		BodyLimit: 12 * 1024 * 1024,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// Static file serving for uploaded media
	app.Static("/uploads", "./uploads")

	// 6. Routes
	api := app.Group("/api")

	// ============ OWNER ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// All routes below require an owner token
	protected := api.Group("", middleware.RequireOwner())

	// Store Routes
	protected.Get("/stores", storeHandler.GetStores)
	protected.Get("/stores/domain-exists", storeHandler.DomainExists)
	protected.Get("/stores/:id", storeHandler.GetStore)
	protected.Post("/stores", storeHandler.CreateStore)
	protected.Delete("/stores/:id", storeHandler.DeleteStore)

	// Product Routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Category Routes
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", categoryHandler.CreateCategory)
	protected.Put("/categories/:id", categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", categoryHandler.DeleteCategory)

	// Customer Routes
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", customerHandler.DeleteCustomer)

	// Order Routes
	protected.Get("/orders", orderHandler.GetOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Put("/orders/:id/status", orderHandler.UpdateOrderStatus)

	// Analytics Routes
	protected.Get("/analytics", analyticsHandler.GetAnalytics)

	// Upload Routes
	protected.Post("/upload", uploadHandler.UploadFile)
	protected.Get("/upload/files", uploadHandler.GetFiles)
	protected.Delete("/upload/:fileName", uploadHandler.DeleteFile)

	// ============ STOREFRONT ROUTES ============
	// Every client route resolves the store from the request origin first.
	client := app.Group("/client", middleware.ResolveStore(storeRepo))

	client.Post("/auth/register", clientHandler.Register)
	client.Post("/auth/login", clientHandler.Login)

	client.Get("/store", clientHandler.GetStore)
	client.Get("/products", clientHandler.GetProducts)
	client.Get("/products/search", clientHandler.SearchProducts)
	client.Get("/products/suggestions", clientHandler.SearchSuggestions)
	client.Get("/products/:id", clientHandler.GetProduct)
	client.Post("/cart/details", clientHandler.GetCartDetails)

	clientAuth := client.Group("", middleware.RequireCustomer())
	clientAuth.Get("/profile", clientHandler.GetProfile)
	clientAuth.Put("/profile", clientHandler.UpdateProfile)
	clientAuth.Post("/orders", clientHandler.CreateOrder)
	clientAuth.Get("/orders", clientHandler.GetOrders)
	clientAuth.Get("/orders/:id", clientHandler.GetOrder)

	// WebSocket Route (owner dashboard event feed)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
