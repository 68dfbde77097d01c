package routes

import (
	"loanhub-portal/internal/adapters/backend"
	"loanhub-portal/internal/adapters/http/handlers"
	"loanhub-portal/internal/adapters/http/middleware"
	"loanhub-portal/internal/adapters/persistence/repositories"
	"loanhub-portal/internal/config"
	"loanhub-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Session store
	sessionRepo := repositories.NewSessionRepository(db)

	// Client for the external loan backend
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// Services
	sessionService := services.NewSessionService(sessionRepo, client, cfg.SessionTTL())
	loanService := services.NewLoanService(client)
	userService := services.NewUserService(client)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(sessionService, cfg)
	loanHandler := handlers.NewLoanHandler(loanService)
	userHandler := handlers.NewUserHandler(userService)

	// Health
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger UI (dev only)
	if cfg.IsDev() {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	api := app.Group("/api/v1")

	// Public auth endpoints, rate-limited harder than the rest
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	// Logout clears unconditionally, so it needs no admission check
	auth.Post("/logout", authHandler.Logout)

	// Protected views: admission is re-evaluated on every request
	protected := api.Group("", middleware.RequireSession(sessionService, cfg), middleware.NoCacheHeaders())
	protected.Get("/auth/me", authHandler.Me)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/loans", loanHandler.OwnLoans)
	dashboard.Post("/loans", loanHandler.CreateLoan)

	// Admin-only views
	admin := protected.Group("/admin", middleware.AdminOnly())
	admin.Get("/loans", loanHandler.AllLoans)
	admin.Patch("/loans/:id/approve", loanHandler.ApproveLoan)
	admin.Patch("/loans/:id/reject", loanHandler.RejectLoan)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)
}
