package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"shoplite/internal/assistant"
	"shoplite/internal/config"
	"shoplite/internal/database"
	"shoplite/internal/handlers"
	"shoplite/internal/jobs"
	"shoplite/internal/knowledge"
	"shoplite/internal/logging"
	"shoplite/internal/middleware"
	"shoplite/internal/services"
	"shoplite/pkg/auth"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting Shoplite Server...")

	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s)", cfg.Port)

	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI environment variable is required (mongodb://host:port/shoplite)")
	}
	db, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Initialize(initCtx); err != nil {
		cancelInit()
		log.Fatalf("❌ Failed to initialize MongoDB indexes: %v", err)
	}
	cancelInit()

	// Redis is optional; without it the assistant runs uncached.
	var redisService *services.RedisService
	var responseCache assistant.ResponseCache
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable: %v (response caching disabled)", err)
		} else {
			defer redisService.Close()
			responseCache = services.NewResponseCache(redisService, 10*time.Minute)
		}
	}

	// Domain services
	orderService := services.NewOrderService(db)
	productService := services.NewProductService(db)
	customerService := services.NewCustomerService(db)
	analyticsService := services.NewAnalyticsService(db)
	metricsService := services.NewMetricsService()

	// Assistant pipeline
	kb := knowledge.Load(cfg.KnowledgeBasePath)
	stopWatch, err := kb.Watch()
	if err != nil {
		log.Printf("⚠️ Knowledge base watcher disabled: %v", err)
	} else {
		defer stopWatch()
	}

	prompts, err := config.LoadPrompts(cfg.PromptsPath)
	if err != nil {
		log.Printf("⚠️ Failed to load prompts (%v), using defaults", err)
		prompts = &config.Prompts{Assistant: config.AssistantPrompts{
			Name: "Alex",
			Role: "a friendly Shoplite customer support assistant",
		}}
	}

	registry := assistant.NewRegistry()
	if err := assistant.RegisterBuiltins(registry, orderService, productService); err != nil {
		log.Fatalf("❌ Failed to register assistant functions: %v", err)
	}

	llmClient := assistant.NewLLMClient(cfg.LLMAPIURL, assistant.LLMOptions{
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
		RateLimit:  cfg.LLMRateLimit,
	})
	if cfg.LLMAPIURL == "" {
		log.Println("⚠️ LLM_API_URL not set: assistant will use template fallbacks only")
	}

	engine := assistant.NewEngine(kb, registry, llmClient, metricsService, prompts, responseCache)

	// Admin auth
	var jwtAuth *auth.JWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth, err = auth.NewJWTAuth(cfg.JWTSecret, 0)
		if err != nil {
			log.Fatalf("❌ Failed to initialize JWT auth: %v", err)
		}
	} else if os.Getenv("ENVIRONMENT") == "production" {
		log.Fatal("❌ JWT_SECRET is required in production")
	} else {
		log.Println("⚠️ JWT_SECRET not set: admin routes are open (development mode)")
	}

	// Background jobs
	scheduler, err := jobs.NewScheduler(analyticsService, orderService, cfg.ChatLogRetentionDays)
	if err != nil {
		log.Fatalf("❌ Failed to create job scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("❌ Failed to start job scheduler: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Shoplite v1.0",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 0, // SSE streams stay open indefinitely
		IdleTimeout:  90 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	prometheus := fiberprometheus.New("shoplite")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	rateLimitConfig := middleware.LoadRateLimitConfig()
	log.Printf("🛡️  [RATE-LIMIT] Loaded config: Global=%d/min, Chat=%d/min, Stream=%d/min",
		rateLimitConfig.GlobalAPIMax, rateLimitConfig.ChatMax, rateLimitConfig.StreamMax)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: cfg.FrontendURL != "*",
	}))

	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, redisService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	customerHandler := handlers.NewCustomerHandler(customerService, orderService)
	assistantHandler := handlers.NewAssistantHandler(engine, kb, analyticsService)
	streamHandler := handlers.NewOrderStreamHandler(orderService, metricsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	adminHandler := handlers.NewAdminHandler(cfg, jwtAuth, metricsService, registry, kb, orderService)

	// Public API
	app.Get("/health", healthHandler.Handle)

	api := app.Group("/api")
	api.Get("/products", productHandler.List)
	api.Get("/products/categories", productHandler.Categories)
	api.Get("/products/:id", productHandler.Get)

	api.Post("/orders", orderHandler.Create)
	api.Get("/orders", orderHandler.ListByCustomer)
	api.Get("/orders/:ref/stream", middleware.StreamRateLimiter(rateLimitConfig), streamHandler.Stream)
	api.Get("/orders/:ref", orderHandler.Get)

	api.Post("/customers", customerHandler.Register)
	api.Get("/customers", customerHandler.GetByEmail)
	api.Get("/customers/:id/orders", customerHandler.Orders)

	api.Post("/assistant/chat", middleware.ChatRateLimiter(rateLimitConfig), assistantHandler.Chat)
	api.Get("/assistant/health", assistantHandler.Health)

	// Admin API
	api.Post("/admin/login", middleware.LoginRateLimiter(rateLimitConfig), adminHandler.Login)

	admin := api.Group("/admin", middleware.RequireAdmin(jwtAuth))
	admin.Get("/metrics", adminHandler.Metrics)
	admin.Get("/metrics/stream", adminHandler.MetricsStream)
	admin.Get("/assistant/functions", adminHandler.AssistantFunctions)
	admin.Get("/knowledge", adminHandler.KnowledgeStats)
	admin.Post("/knowledge/reload", adminHandler.KnowledgeReload)
	admin.Get("/orders", orderHandler.AdminList)
	admin.Get("/orders/export", adminHandler.ExportOrders)
	admin.Patch("/orders/:orderId/status", orderHandler.SetStatus)
	admin.Post("/products", productHandler.Create)
	admin.Get("/customers", customerHandler.AdminList)
	admin.Get("/analytics/dashboard", analyticsHandler.Dashboard)
	admin.Get("/analytics/revenue", analyticsHandler.Revenue)
	admin.Get("/analytics/intents", analyticsHandler.Intents)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		scheduler.Stop()

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
