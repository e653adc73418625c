// main.go
package main

import (
	"log"
	"os"
	"time"

	"meritledger/database"
	"meritledger/handlers"
	"meritledger/middleware"
	"meritledger/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database and registry
	database.InitDB()

	eventBus := services.NewEventBus()
	registry := services.NewRegistry(database.GetDB(), eventBus)
	handlers.InitHandlers(registry, eventBus)

	services.InitCleanupService(database.GetDB())
	services.GetCleanupService().Start()
	defer services.GetCleanupService().Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// Issuer registry
	api.Post("/issuers", middleware.AuthMiddleware, handlers.RegisterIssuer)
	api.Delete("/issuers/:account", middleware.AuthMiddleware, handlers.DeactivateIssuer)
	api.Get("/issuers/:account", handlers.GetIssuerInfo)

	// Achievement catalog
	api.Post("/achievements", middleware.AuthMiddleware, handlers.CreateAchievement)
	api.Delete("/achievements/:id", middleware.AuthMiddleware, handlers.DeactivateAchievement)
	api.Get("/achievements/:id", handlers.GetAchievement)

	// Certification catalog
	api.Post("/certifications", middleware.AuthMiddleware, handlers.CreateCertification)
	api.Delete("/certifications/:id", middleware.AuthMiddleware, handlers.DeactivateCertification)
	api.Get("/certifications/:id", handlers.GetCertification)

	// Award engine
	awardGroup := api.Group("/awards")
	awardGroup.Use(middleware.AuthMiddleware)
	awardGroup.Post("/achievement", handlers.AwardAchievement)
	awardGroup.Post("/certification", handlers.AwardCertification)

	// Reward claims
	api.Post("/rewards/claim", middleware.AuthMiddleware, handlers.ClaimReward)

	// Profiles and reports
	api.Get("/profiles/:account", handlers.GetUserProfile)
	api.Get("/profiles/:account/report", handlers.GetUserReport)
	api.Get("/profiles/:account/achievements/:id", handlers.HasAchievement)
	api.Get("/profiles/:account/certifications/:id", handlers.HasCertification)

	// Registry administration and global reads
	registryGroup := api.Group("/registry")
	registryGroup.Get("/stats", handlers.GetRegistryStats)
	registryGroup.Get("/health", handlers.GetRegistryHealth)
	registryGroup.Post("/fund", middleware.AuthMiddleware, handlers.FundRegistry)
	registryGroup.Post("/withdraw", middleware.AuthMiddleware, handlers.WithdrawRegistryFunds)
	registryGroup.Post("/pause", middleware.AuthMiddleware, handlers.EmergencyPause)
	registryGroup.Post("/resume", middleware.AuthMiddleware, handlers.ResumeOperations)
	registryGroup.Post("/cleanup", middleware.AuthMiddleware, handlers.ManualCleanup)

	// Live award feed
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws", websocket.New(handlers.EventsFeed))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Award feed available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
