package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"loanhub-portal/internal/adapters/http/middleware"
	"loanhub-portal/internal/adapters/http/routes"
	"loanhub-portal/internal/adapters/persistence/models"
	"loanhub-portal/internal/adapters/persistence/repositories"
	"loanhub-portal/internal/config"
	"loanhub-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "loanhub-portal/docs" // Swagger docs
)

// @title LoanHub Portal API
// @version 1.0
// @description Portal gateway for the LoanHub lending platform: sessions, admission and loan views in front of the loan backend.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey SessionCookie
// @in header
// @name Authorization
// @description Signed session token, normally delivered as the portal_session cookie.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to the session store
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to session store: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate the portal's own tables
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Session store migration completed")

	// Background sweep of expired sessions
	sweeper := services.NewSweeperService(repositories.NewSessionRepository(db))
	sweeper.Start()
	defer sweeper.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LoanHub Portal v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Portal starting on port %s [MODE: %s] → backend %s", cfg.Port, cfg.AppMode, cfg.Backend.BaseURL)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down portal...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Portal stopped gracefully")
}
