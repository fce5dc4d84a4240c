package routes

import (
	"servini-backend/internal/adapters/http/handlers"
	"servini-backend/internal/adapters/http/middleware"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/config"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, uploads *upload.Store) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	offerRepo := repositories.NewOfferRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	conversationRepo := repositories.NewConversationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	feedRepo := repositories.NewFeedRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, uploads)
	offerService := services.NewOfferService(offerRepo, uploads)
	projectService := services.NewProjectService(projectRepo, applicationRepo)
	portfolioService := services.NewPortfolioService(portfolioRepo, uploads)
	messageService := services.NewMessageService(conversationRepo, messageRepo, userRepo)
	feedService := services.NewFeedService(feedRepo, uploads)
	adminService := services.NewAdminService(userRepo, projectRepo, uploads, db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(userService, uploads)
	offerHandler := handlers.NewOfferHandler(offerService, uploads)
	projectHandler := handlers.NewProjectHandler(projectService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, uploads)
	messageHandler := handlers.NewMessageHandler(messageService, uploads)
	feedHandler := handlers.NewFeedHandler(feedService, uploads)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded files
	app.Static("/uploads", uploads.Root())

	// Shared middleware instances
	auth := middleware.AuthMiddleware(cfg, userRepo)

	// API v1 group
	v1 := app.Group("/api/v1")

	// Auth routes (rate limited)
	authGroup := v1.Group("/auth")
	authGroup.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authGroup.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authGroup.Get("/verify", auth, authHandler.Verify)

	// Profile routes
	v1.Get("/profile", auth, profileHandler.Get)
	v1.Put("/profile", auth, profileHandler.Update)
	v1.Put("/profile/password", auth, profileHandler.ChangePassword)
	v1.Get("/users/:id", auth, profileHandler.GetByID)

	// Offer routes (browsing is public, mutation is contractor-only)
	offers := v1.Group("/offers")
	offers.Get("/", offerHandler.List)
	offers.Get("/:id", offerHandler.Get)
	offers.Post("/", auth, middleware.ContractorOnly(), offerHandler.Create)
	offers.Put("/:id", auth, middleware.RoleMiddleware("contractor", "admin"), offerHandler.Update)
	offers.Delete("/:id", auth, middleware.RoleMiddleware("contractor", "admin"), offerHandler.Delete)

	// Project routes
	projects := v1.Group("/projects", auth)
	projects.Post("/", middleware.ClientOnly(), projectHandler.Create)
	projects.Get("/client", middleware.ClientOnly(), projectHandler.ListMine)
	projects.Get("/available", middleware.ContractorOnly(), projectHandler.ListAvailable)
	projects.Post("/:id/apply", middleware.ContractorOnly(), projectHandler.Apply)
	projects.Get("/:id/applications", middleware.RoleMiddleware("client", "admin"), projectHandler.ListApplications)
	projects.Patch("/:id/status", middleware.RoleMiddleware("client", "admin"), projectHandler.UpdateStatus)
	projects.Delete("/:id", middleware.AdminOnly(), projectHandler.Delete)

	// Application routes
	v1.Get("/applications/my", auth, middleware.ContractorOnly(), projectHandler.ListMyApplications)
	v1.Patch("/applications/:id/status", auth, middleware.RoleMiddleware("client", "admin"), projectHandler.UpdateApplicationStatus)

	// Portfolio routes (contractor's showcase)
	portfolio := v1.Group("/portfolio", auth)
	portfolio.Get("/", middleware.ContractorOnly(), portfolioHandler.ListMine)
	portfolio.Get("/contractor/:id", portfolioHandler.ListByContractor)
	portfolio.Post("/", middleware.ContractorOnly(), portfolioHandler.Create)
	portfolio.Patch("/:id", middleware.RoleMiddleware("contractor", "admin"), portfolioHandler.Update)
	portfolio.Delete("/:id", middleware.RoleMiddleware("contractor", "admin"), portfolioHandler.Delete)

	// Messaging routes
	conversations := v1.Group("/conversations", auth)
	conversations.Post("/", messageHandler.CreateConversation)
	conversations.Get("/", messageHandler.ListConversations)
	conversations.Get("/:id/messages", messageHandler.ListMessages)
	conversations.Post("/:id/messages", messageHandler.SendMessage)
	v1.Put("/messages/:id/read", auth, messageHandler.MarkAsRead)
	v1.Get("/messages/unread-count", auth, messageHandler.UnreadTotal)

	// Feed routes
	feed := v1.Group("/feed", auth)
	feed.Get("/", feedHandler.List)
	feed.Post("/", feedHandler.Create)
	feed.Delete("/:id", feedHandler.Delete)

	// Admin routes
	admin := v1.Group("/admin", auth, middleware.AdminOnly())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Patch("/users/:id", adminHandler.UpdateUserStatus)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/projects", adminHandler.ListProjects)
	admin.Get("/stats", adminHandler.Stats)
}
