package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"

	"github.com/inkwell-hq/inkwell-api/internal/config"
	"github.com/inkwell-hq/inkwell-api/internal/database"
	"github.com/inkwell-hq/inkwell-api/internal/handlers"
	"github.com/inkwell-hq/inkwell-api/internal/hub"
	authmw "github.com/inkwell-hq/inkwell-api/internal/middleware"
	"github.com/inkwell-hq/inkwell-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	documentService := services.NewDocumentService(db)
	templateService := services.NewTemplateService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	relay := hub.NewHub()
	go relay.Run()

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	collaborationHandler := handlers.NewCollaborationHandler(documentService, userService, emailService, cfg.BaseURL)
	templateHandler := handlers.NewTemplateHandler(templateService)
	realtimeHandler := handlers.NewRealtimeHandler(relay, jwtService, userService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/documents", documentHandler.List)
	protected.Get("/documents/shared", documentHandler.ListShared)
	protected.Post("/documents", documentHandler.Create)
	protected.Get("/documents/:id", documentHandler.Get)
	protected.Put("/documents/:id", documentHandler.Update)
	protected.Delete("/documents/:id", documentHandler.Delete)
	protected.Post("/documents/:id/duplicate", documentHandler.Duplicate)

	protected.Get("/collaboration/:id/collaborators", collaborationHandler.List)
	protected.Post("/collaboration/:id/collaborators", collaborationHandler.Add)
	protected.Put("/collaboration/:id/collaborators/:userId", collaborationHandler.Update)
	protected.Delete("/collaboration/:id/collaborators/:userId", collaborationHandler.Remove)

	api.Get("/templates", templateHandler.Search)
	api.Get("/templates/:templateId", templateHandler.Get)
	protected.Post("/templates", templateHandler.Create)
	protected.Post("/templates/:templateId/use", templateHandler.Use)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	api.Get("/realtime", realtimeHandler.Connect)

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
