package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golinks/golinks-be/internal/api/handlers"
	"github.com/golinks/golinks-be/internal/auth"
	"github.com/golinks/golinks-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.Manager, userService services.UserServiceProvider, shortcutService services.ShortcutServiceProvider, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	shortcutHandler := handlers.NewShortcutHandler(shortcutService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"healthy","message":"API is running"}`))
		})

		// Public endpoints
		r.Post("/signup", userHandler.Signup)
		r.Post("/login", userHandler.Login)

		// Everything below resolves the caller from the bearer token first.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, userService))

			r.Get("/users", userHandler.GetAll)
			r.Get("/profile", userHandler.Profile)

			r.Route("/shortcuts", func(r chi.Router) {
				r.Get("/", shortcutHandler.GetAll)
				r.Post("/", shortcutHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", shortcutHandler.Update)
					r.Delete("/", shortcutHandler.Delete)
				})
			})

			r.Get("/search/{query}", shortcutHandler.Search)
		})
	})

	return r
}
