package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"servini-backend/internal/adapters/http/middleware"
	"servini-backend/internal/adapters/http/routes"
	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/config"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"

	_ "servini-backend/docs" // Swagger docs
)

// @title Servini API
// @version 1.0
// @description Two-sided marketplace API connecting clients with contractors
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@servini.net

// @host api.servini.net
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the default admin account
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Upload store (local disk)
	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("❌ Failed to initialize upload store: %v", err)
	}

	// Nightly maintenance jobs (orphaned upload sweep)
	maintenance := services.NewMaintenanceService(db, uploads)
	maintenance.Start()
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Servini API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    30 * 1024 * 1024, // room for multi-image multipart uploads
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, uploads)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
