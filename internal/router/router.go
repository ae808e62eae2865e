// Package router sets up all HTTP routes and middleware chains for the
// BlogSphere API. Reads are open; mutating endpoints sit behind the
// write rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"blogsphere/internal/handlers"
	"blogsphere/internal/middleware"
)

// New creates and returns the configured router with all middleware
// and route groups wired up.
func New(api *handlers.API, corsOrigins []string, writeLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.CategoriesList)
			r.Get("/slug/{slug}", api.CategoryBySlug)
			r.Get("/{id}", api.CategoryByID)

			r.Group(func(r chi.Router) {
				r.Use(writeLimiter.Middleware)
				r.Post("/", api.CategoryCreate)
				r.Put("/{id}", api.CategoryUpdate)
				r.Delete("/{id}", api.CategoryDelete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.PostsList)
			r.Get("/dashboard", api.PostsDashboard)
			r.Get("/slug/{slug}", api.PostBySlug)
			r.Get("/{id}", api.PostByID)
			r.Get("/{id}/preview", api.PostPreview)

			r.Group(func(r chi.Router) {
				r.Use(writeLimiter.Middleware)
				r.Post("/", api.PostCreate)
				r.Put("/{id}", api.PostUpdate)
				r.Delete("/{id}", api.PostDelete)
			})
		})

		r.Get("/stats", api.Stats)
	})

	// The frontend lives on a different origin, so CORS wraps everything.
	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	})
	return c.Handler(r)
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
