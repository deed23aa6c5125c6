package routes

import (
	"net/http"
	"time"

	"github.com/carromarket/backend/app"
	"github.com/carromarket/backend/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.DealerService, deps.Logger)
	vehicleHandler := handlers.NewVehicleHandler(deps.VehicleService, deps.Logger)
	dealerHandler := handlers.NewDealerHandler(deps.DealerService, deps.Logger)

	// Health check endpoints
	r.Get("/healthz", healthHandler.HandleLiveness)
	r.Get("/readyz", healthHandler.HandleReadiness)

	// Authentication endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/me", authHandler.HandleMe)
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Vehicle listings
		r.Route("/vehicles", func(r chi.Router) {
			// Public reads; a presented token must still be valid
			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.OptionalAuth)
				r.Get("/public", vehicleHandler.HandleList)
				r.Get("/{vehicleID}", vehicleHandler.HandleGet)
			})

			// Authenticated operations
			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Get("/", vehicleHandler.HandleList)
				r.Post("/", vehicleHandler.HandleCreate)
				r.Put("/{vehicleID}", vehicleHandler.HandleUpdate)
				r.Delete("/{vehicleID}", vehicleHandler.HandleDelete)
			})
		})

		// Dealer storefront profiles
		r.Route("/dealer-profile", func(r chi.Router) {
			// Public read of any dealer's storefront; a presented token must
			// still be valid
			r.With(deps.AuthMiddleware.OptionalAuth).Get("/{userID}", dealerHandler.HandleGetByUserID)

			// Owner-only operations
			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Get("/", dealerHandler.HandleGetMine)
				r.Post("/", dealerHandler.HandleCreate)
				r.Put("/", dealerHandler.HandleUpdate)
				r.Delete("/", dealerHandler.HandleDelete)
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
