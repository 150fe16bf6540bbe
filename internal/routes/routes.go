package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vachangowdas/Agrifair1/internal/auth"
	"github.com/Vachangowdas/Agrifair1/internal/config"
	"github.com/Vachangowdas/Agrifair1/internal/handlers"
	"github.com/Vachangowdas/Agrifair1/internal/identity"
	"github.com/Vachangowdas/Agrifair1/internal/middleware"
	"github.com/Vachangowdas/Agrifair1/internal/pricing"
	"github.com/Vachangowdas/Agrifair1/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, st *store.Fallback, cfg *config.Config) {
	authService := auth.NewService(st, cfg)
	resolver := identity.NewResolver(st)
	priceClient := pricing.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	authHandler := handlers.NewAuthHandler(authService)
	complaintHandler := handlers.NewComplaintHandler(st, resolver)
	farmerHandler := handlers.NewFarmerHandler(st, resolver, cfg)
	priceHandler := handlers.NewPriceHandler(priceClient)
	healthHandler := handlers.NewHealthHandler(st, priceClient)

	api := app.Group("/api")

	api.Get("/health", healthHandler.Health)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/otp/request", authHandler.RequestOTP)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/signup", authHandler.Signup)

	// Public spotlight feed
	api.Get("/farmers", farmerHandler.ListFarmers)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/session", authHandler.Session)

	protected.Get("/complaints", complaintHandler.ListComplaints)
	protected.Post("/complaints", complaintHandler.CreateComplaint)

	protected.Put("/farmers", farmerHandler.UpsertFarmer)
	protected.Delete("/farmers/:userId", farmerHandler.DeleteFarmer)

	protected.Post("/price/calculate", priceHandler.Calculate)
}
