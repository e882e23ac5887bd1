package api

import (
	"net/http"

	"github.com/devmatch/backend/internal/api/handlers"
	"github.com/devmatch/backend/internal/api/middleware"
	"github.com/devmatch/backend/internal/metrics"
	"github.com/devmatch/backend/internal/service"
	"github.com/devmatch/backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)
	r.Use(metrics.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	swipeHandler := handlers.NewSwipeHandler(services.Swipe)
	discoverHandler := handlers.NewDiscoverHandler(services.Discovery)
	chatHandler := handlers.NewChatHandler(services.Chat)
	profileHandler := handlers.NewProfileHandler(services.Profile)
	technologyHandler := handlers.NewTechnologyHandler(services.Profile)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Technology catalog (public)
		r.Get("/technologies", technologyHandler.List)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Swipe routes
			r.Route("/swipes", func(r chi.Router) {
				r.Post("/like", swipeHandler.Like)
				r.Get("/matches", swipeHandler.GetMatches)
			})

			// Discovery feed
			r.Get("/discover", discoverHandler.Discover)

			// Chat routes
			r.Route("/chats", func(r chi.Router) {
				r.Get("/", chatHandler.GetChatList)
				r.Get("/{matchId}/messages", chatHandler.GetHistory)
			})

			// Profile routes
			r.Route("/profile", func(r chi.Router) {
				r.Put("/", profileHandler.Update)
				r.Get("/{userId}", profileHandler.Get)
				r.Post("/tech", profileHandler.AddTech)
				r.Delete("/tech/{name}", profileHandler.RemoveTech)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
